package handler

import (
	"net/http"

	"github.com/msomdec/dataproc/internal/service"
)

// ProcessedUserHandler handles processed-user HTTP requests.
type ProcessedUserHandler struct {
	processor *service.ProcessorService
}

// NewProcessedUserHandler creates a new ProcessedUserHandler.
func NewProcessedUserHandler(processor *service.ProcessorService) *ProcessedUserHandler {
	return &ProcessedUserHandler{processor: processor}
}

// HandleProcess derives and stores a processed record from the posted raw user.
func (h *ProcessedUserHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var req rawUserRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.processor.Process(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProcessedUserResponse(*user))
}

// HandleGet returns the processed record for the user_id path parameter.
func (h *ProcessedUserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.processor.Get(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProcessedUserResponse(*user))
}

// HandleList returns all processed records in insertion order.
func (h *ProcessedUserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.processor.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProcessedUserResponses(users))
}

// HandleDelete removes the processed record for the user_id path parameter.
func (h *ProcessedUserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if err := h.processor.Delete(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "processed data for user " + userID + " deleted successfully",
	})
}
