// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Command shopd serves the Shop Store to UI components over a local
// JSON/HTTP facade.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the Local Persistent Store and restore state.
//  4. Wire HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rayaw/storefront/internal/api"
	"github.com/rayaw/storefront/internal/app"
	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/shop"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := app.NewLogger(false)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = app.NewLogger(true)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("state_backend", cfg.StateBackend),
		slog.String("remote", cfg.RemoteBaseURL),
	)

	// ── 3. Shop Store ─────────────────────────────────────────────────────
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	runtime, err := app.Open(startupCtx, cfg, log)
	must(log, err, "open shop store")
	defer func() {
		log.Info("closing_shop_store")
		if cerr := runtime.Close(); cerr != nil {
			log.Error("store_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Handlers ───────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(log, api.HealthCheck{
		Name:  "localstore",
		Probe: runtime.Storage.Ping,
	})

	// The server context stops background sweepers on shutdown.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Shop:      shop.NewHandler(runtime.Store),
	})

	// ── 5. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
