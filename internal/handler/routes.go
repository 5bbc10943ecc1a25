package handler

import (
	"net/http"

	"github.com/msomdec/dataproc/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	processor *service.ProcessorService,
	analytics *service.AnalyticsService,
	upstream *service.UpstreamClient,
	auth *service.AuthService,
	limiter *service.TokenBucket,
) {
	users := NewProcessedUserHandler(processor)
	analyticsHandler := NewAnalyticsHandler(analytics)
	dashboard := NewDashboardHandler(analytics)
	batch := NewBatchHandler(processor, upstream)
	cross := NewCrossServiceHandler(upstream, processor)

	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.HandleFunc("GET /health", HandleHealth)

	mux.Handle("POST /process-user", RequireAuth(auth, http.HandlerFunc(users.HandleProcess)))
	mux.HandleFunc("GET /processed-users", users.HandleList)
	mux.HandleFunc("GET /processed-users/{user_id}", users.HandleGet)
	mux.Handle("DELETE /processed-users/{user_id}", RequireAuth(auth, http.HandlerFunc(users.HandleDelete)))

	mux.HandleFunc("GET /analytics", analyticsHandler.HandleAnalytics)
	mux.HandleFunc("GET /analytics/stream", dashboard.HandleAnalyticsStream)
	mux.HandleFunc("GET /dashboard", dashboard.HandleDashboard)

	// Endpoints that fan out to the sibling service are rate limited.
	mux.Handle("GET /cross-service-test", RateLimit(limiter, http.HandlerFunc(cross.HandleCrossServiceTest)))
	mux.Handle("POST /batch-process", RequireAuth(auth, RateLimit(limiter, http.HandlerFunc(batch.HandleBatchProcess))))
}
