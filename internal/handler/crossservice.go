package handler

import (
	"net/http"

	"github.com/msomdec/dataproc/internal/service"
)

// CrossServiceHandler reports reachability of the sibling service.
type CrossServiceHandler struct {
	upstream  *service.UpstreamClient
	processor *service.ProcessorService
}

// NewCrossServiceHandler creates a new CrossServiceHandler.
func NewCrossServiceHandler(upstream *service.UpstreamClient, processor *service.ProcessorService) *CrossServiceHandler {
	return &CrossServiceHandler{upstream: upstream, processor: processor}
}

type crossServiceCheck struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Count    *int   `json:"count,omitempty"`
	Response any    `json:"response,omitempty"`
}

type crossServiceResponse struct {
	CrossServiceTest    map[string]crossServiceCheck `json:"cross_service_test"`
	ServiceStatus       string                       `json:"service_status"`
	ProcessedUsersCount int                          `json:"processed_users_count"`
}

// HandleCrossServiceTest probes the sibling service's health and user list
// and reports each check's outcome. Upstream failures are reported, not
// propagated; this endpoint always answers 200.
func (h *CrossServiceHandler) HandleCrossServiceTest(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]crossServiceCheck, 2)

	if body, err := h.upstream.Health(r.Context()); err != nil {
		checks["upstream_health"] = crossServiceCheck{Status: "error", Error: err.Error()}
	} else {
		checks["upstream_health"] = crossServiceCheck{Status: "success", Response: body}
	}

	if users, err := h.upstream.FetchUsers(r.Context()); err != nil {
		checks["upstream_users"] = crossServiceCheck{Status: "error", Error: err.Error()}
	} else {
		count := len(users)
		checks["upstream_users"] = crossServiceCheck{Status: "success", Count: &count}
	}

	count, err := h.processor.Count(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, crossServiceResponse{
		CrossServiceTest:    checks,
		ServiceStatus:       "healthy",
		ProcessedUsersCount: count,
	})
}
