package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JonMunkholm/countrydash/internal/config"
	"github.com/JonMunkholm/countrydash/internal/core"
	"github.com/JonMunkholm/countrydash/internal/countries"
	"github.com/JonMunkholm/countrydash/internal/logging"
	"github.com/JonMunkholm/countrydash/internal/metrics"
	"github.com/JonMunkholm/countrydash/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"backend_url", cfg.Backend.URL,
		"sync_max_concurrent", cfg.Sync.MaxConcurrent,
		"session_idle_ttl", cfg.Session.IdleTTL.String(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := countries.NewClient(cfg.Backend.URL,
		countries.WithTimeout(cfg.Backend.Timeout),
		countries.WithPaths(cfg.Backend.SyncPath, cfg.Backend.RegionsPath, cfg.Backend.CountriesPath),
		countries.WithDefaultLimit(cfg.Backend.DefaultLimit),
		countries.WithMetrics(m),
	)

	limiter := core.NewSyncLimiter(cfg.Sync.MaxConcurrent, cfg.Sync.MaxWait)

	sessions := core.NewSessions(func(id string) *core.Dashboard {
		return core.NewDashboard(id, client,
			core.WithSyncLimiter(limiter),
			core.WithMetrics(m),
		)
	}, core.SessionsConfig{
		IdleTTL: cfg.Session.IdleTTL,
		Max:     cfg.Session.MaxSessions,
	}, m)

	server := web.NewServer(cfg, sessions, limiter, m)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go sessions.StartSweeper(jobCtx, cfg.Session.SweepInterval)

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight backend syncs (with timeout)
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for syncs to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("syncs did not complete in time", "error", err)
			} else {
				slog.Info("all syncs completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		sessions.CloseAll()
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}
