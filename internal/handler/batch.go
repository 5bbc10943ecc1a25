package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/msomdec/dataproc/internal/domain"
	"github.com/msomdec/dataproc/internal/service"
)

// BatchHandler processes raw users in bulk, either from the request body or
// fetched from the sibling service.
type BatchHandler struct {
	processor *service.ProcessorService
	upstream  *service.UpstreamClient
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(processor *service.ProcessorService, upstream *service.UpstreamClient) *BatchHandler {
	return &BatchHandler{processor: processor, upstream: upstream}
}

// HandleBatchProcess processes each posted raw user independently; a failed
// record is reported alongside the successes and never aborts the batch.
// With an empty body the full user set is fetched from the sibling service.
// The upstream fetch happens before any store mutation, so the store is never
// held up by the network call.
func (h *BatchHandler) HandleBatchProcess(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var raws []domain.RawUser
	if len(req.Users) > 0 {
		raws = make([]domain.RawUser, 0, len(req.Users))
		for _, u := range req.Users {
			raws = append(raws, u.toDomain())
		}
	} else {
		fetched, err := h.upstream.FetchUsers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		raws = fetched
	}

	result := h.processor.BatchProcess(r.Context(), raws)
	writeJSON(w, http.StatusOK, toBatchResponse(len(raws), result))
}
