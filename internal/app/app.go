// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package app assembles the Shop Store from configuration.

Both binaries share this wiring: shopd serves the store over the local
facade, shopctl drives it from the command line.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/remote"
	"github.com/rayaw/storefront/internal/shop"
)

// Runtime owns the loaded store and the backend behind it.
type Runtime struct {
	Store   *shop.Store
	Storage localstore.Store
	Logger  *slog.Logger
}

// NewLogger returns the JSON logger both binaries use, tagged with the app name.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

/*
Open connects the persistence backend, builds the remote client and loads
the store.

Returns:
  - *Runtime: ready store; the caller owns Close
  - error: backend or remote configuration failures
*/
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	storage, err := localstore.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app_open_storage_failed: %w", err)
	}

	client, err := remote.New(remote.Options{
		BaseURL:         cfg.RemoteBaseURL,
		Timeout:         cfg.RemoteTimeout,
		RPS:             cfg.RemoteRPS,
		Burst:           cfg.RemoteBurst,
		PasswordField:   cfg.PasswordField,
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          logger,
	})
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("app_open_remote_failed: %w", err)
	}

	store := shop.New(shop.Deps{
		Remote:  client,
		Storage: storage,
		Logger:  logger,
	}, shop.Options{
		PageSize:        cfg.PageSize,
		StaleAfter:      cfg.CatalogStaleAfter,
		NotificationTTL: cfg.NotificationTTL,
		DefaultCurrency: cfg.DefaultCurrency,
	})
	store.Load(ctx)

	return &Runtime{Store: store, Storage: storage, Logger: logger}, nil
}

// Close stops the store timers and releases the backend.
func (runtime *Runtime) Close() error {
	runtime.Store.Close()
	return runtime.Storage.Close()
}
