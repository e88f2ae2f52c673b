// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/migration"
	pgstore "github.com/rayaw/storefront/internal/platform/postgres"
	redisstore "github.com/rayaw/storefront/internal/platform/redis"
)

/*
Open builds the backend selected by cfg.StateBackend.

When cfg.StateSecret is set, the session token keys are sealed at rest.

Parameters:
  - context: bounds connection attempts and migrations
  - cfg: loaded configuration
  - logger: structured logger for backend events

Returns:
  - Store: ready-to-use backend; the caller owns Close
  - error: connection, migration or filesystem failures
*/
func Open(context context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	var store Store

	switch cfg.StateBackend {
	case config.BackendMemory:
		store = NewMemoryStore()

	case config.BackendFile:
		fileStore, err := NewFileStore(cfg.StateDir, cfg.StateProfile)
		if err != nil {
			return nil, err
		}
		store = fileStore

	case config.BackendRedis:
		client, err := redisstore.NewClient(context, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		store = NewRedisStore(client, cfg.StateProfile)

	case config.BackendPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		pool, err := pgstore.NewPool(context, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		store = NewPostgresStore(pool, cfg.StateProfile)

	default:
		return nil, fmt.Errorf("localstore: unknown backend %q", cfg.StateBackend)
	}

	if cfg.StateSecret != "" {
		sealed, err := NewSealedStore(store, cfg.StateSecret, constants.KeyAccessToken, constants.KeyRefreshToken)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		store = sealed
	}

	logger.Debug("localstore_opened",
		slog.String("backend", cfg.StateBackend),
		slog.String("profile", cfg.StateProfile),
		slog.Bool("sealed", cfg.StateSecret != ""),
	)

	return store, nil
}
