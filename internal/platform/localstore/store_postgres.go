// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rayaw/storefront/internal/platform/database/schema"
	pgstore "github.com/rayaw/storefront/internal/platform/postgres"
)

// PostgresStore implements [Store] on the client.state table.
type PostgresStore struct {
	pool    *pgxpool.Pool
	profile string
}

// NewPostgresStore creates a PostgreSQL-backed store scoped to profile.
// The table must already exist (see migration.RunUp).
func NewPostgresStore(pool *pgxpool.Pool, profile string) *PostgresStore {
	return &PostgresStore{pool: pool, profile: profile}
}

/*
Get retrieves the blob stored for (profile, key).

Returns:
  - []byte: raw value
  - error: ErrNotFound or database execution failure
*/
func (repository *PostgresStore) Get(context context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ClientState.Value, schema.ClientState.Table,
		schema.ClientState.Profile, schema.ClientState.Key,
	)

	var value []byte
	err := repository.pool.QueryRow(context, query, repository.profile, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_state_get_failed: %w", err)
	}

	return value, nil
}

// Set upserts the blob for (profile, key).
func (repository *PostgresStore) Set(context context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = now()`,
		schema.ClientState.Table,
		schema.ClientState.Profile, schema.ClientState.Key, schema.ClientState.Value, schema.ClientState.UpdatedAt,
		schema.ClientState.Profile, schema.ClientState.Key,
		schema.ClientState.Value, schema.ClientState.Value, schema.ClientState.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, repository.profile, key, value); err != nil {
		return fmt.Errorf("postgres_state_set_failed: %w", err)
	}

	return nil
}

// Delete removes the row for (profile, key).
func (repository *PostgresStore) Delete(context context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ClientState.Table, schema.ClientState.Profile, schema.ClientState.Key,
	)

	if _, err := repository.pool.Exec(context, query, repository.profile, key); err != nil {
		return fmt.Errorf("postgres_state_delete_failed: %w", err)
	}

	return nil
}

// Ping verifies that the pool is healthy.
func (repository *PostgresStore) Ping(context context.Context) error {
	return pgstore.Ping(context, repository.pool)
}

// Close closes the pool.
func (repository *PostgresStore) Close() error {
	repository.pool.Close()
	return nil
}
