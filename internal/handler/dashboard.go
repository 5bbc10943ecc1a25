package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/dataproc/internal/service"
	"github.com/msomdec/dataproc/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

const analyticsRefreshInterval = 2 * time.Second

// DashboardHandler serves the ops dashboard and its live analytics stream.
type DashboardHandler struct {
	analytics *service.AnalyticsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(analytics *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// HandleDashboard renders the dashboard page shell.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	view.DashboardPage().Render(r.Context(), w)
}

// HandleAnalyticsStream pushes the analytics panel over SSE, refreshing it
// until the client disconnects. Each refresh recomputes from current state.
func (h *DashboardHandler) HandleAnalyticsStream(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ticker := time.NewTicker(analyticsRefreshInterval)
	defer ticker.Stop()

	for {
		summary, err := h.analytics.Summary(r.Context())
		if err != nil {
			slog.Error("compute analytics for stream", "error", err)
			return
		}

		if err := sse.PatchElementTempl(
			view.AnalyticsPanel(*summary),
			datastar.WithSelectorID("analytics-panel"),
			datastar.WithModeInner(),
		); err != nil {
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
