// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the Shop Store, the remote client and the local
    persistence backend via constructors.
  - Zero Hidden State: No global variables are used to store config.

Both binaries (shopd and shopctl) read the same schema.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Persistence backends understood by [Config.StateBackend].
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the storefront client.
type Config struct {

	// Local facade settings
	ServerHost  string `env:"SERVER_HOST"  envDefault:"127.0.0.1"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8787"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote API
	RemoteBaseURL string        `env:"REMOTE_BASE_URL"  envDefault:"https://rayawclothing-backend.onrender.com"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT"   envDefault:"15s"`
	RemoteRPS     float64       `env:"REMOTE_RPS"       envDefault:"10"`
	RemoteBurst   int           `env:"REMOTE_BURST"     envDefault:"20"`

	// PasswordField is the JSON key the login endpoint reads the password from.
	PasswordField string `env:"REMOTE_PASSWORD_FIELD" envDefault:"user_password"`

	// Catalog and presentation
	PageSize          int           `env:"CATALOG_PAGE_SIZE"   envDefault:"12"`
	CatalogStaleAfter time.Duration `env:"CATALOG_STALE_AFTER" envDefault:"5m"`
	DefaultCurrency   string        `env:"DEFAULT_CURRENCY"    envDefault:"GHS"`
	NotificationTTL   time.Duration `env:"NOTIFICATION_TTL"    envDefault:"3s"`

	// Local Persistent Store
	StateBackend string `env:"STATE_BACKEND" envDefault:"file"`
	StateDir     string `env:"STATE_DIR"     envDefault:".storefront"`
	StateProfile string `env:"STATE_PROFILE" envDefault:"default"`

	// StateSecret, when set, seals persisted session tokens at rest.
	StateSecret string `env:"STATE_SECRET"`

	// Key-Value backend (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Relational backend (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates
// backend-specific requirements.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.StateBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the %q backend", c.StateBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %q backend", c.StateBackend)
		}
	default:
		return fmt.Errorf("config: unknown STATE_BACKEND %q", c.StateBackend)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("config: CATALOG_PAGE_SIZE must be positive, got %d", c.PageSize)
	}

	if c.NotificationTTL <= 0 {
		return fmt.Errorf("config: NOTIFICATION_TTL must be positive, got %s", c.NotificationTTL)
	}

	return nil
}

// Addr returns the listen address of the local facade.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

