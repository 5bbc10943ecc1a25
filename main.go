package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/msomdec/dataproc/internal/config"
	"github.com/msomdec/dataproc/internal/domain"
	"github.com/msomdec/dataproc/internal/handler"
	"github.com/msomdec/dataproc/internal/repository/memory"
	"github.com/msomdec/dataproc/internal/repository/sqlite"
	"github.com/msomdec/dataproc/internal/service"
)

const serviceSubject = "data-processing-service"

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	// Default backend is in-memory; DATABASE_PATH opts into SQLite persistence.
	var users domain.ProcessedUserRepository
	if cfg.DatabasePath != "" {
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(context.Background()); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database migrations applied", "path", cfg.DatabasePath)

		users = db.ProcessedUsers()
	} else {
		slog.Info("using in-memory store; records are lost on restart")
		users = memory.NewProcessedUserStore()
	}

	stats := service.NewStats()
	auth := service.NewAuthService(cfg.AuthSecret, cfg.APIKeyHash, serviceSubject)
	processor := service.NewProcessorService(users, stats)
	analytics := service.NewAnalyticsService(users, stats)
	upstream := service.NewUpstreamClient(cfg.UpstreamURL, cfg.UpstreamTimeoutDuration(), auth)
	limiter := service.NewTokenBucket(cfg.RateLimitRate, cfg.RateLimitBurst)

	if auth.Enabled() {
		slog.Info("service auth enabled")
	} else {
		slog.Warn("service auth disabled; mutating endpoints are open")
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, processor, analytics, upstream, auth, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "upstream", upstream.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
