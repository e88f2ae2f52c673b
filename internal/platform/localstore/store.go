// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package localstore implements the Local Persistent Store: a key-value store of
JSON blobs that survives process restarts.

The Shop Store keeps exactly a handful of fixed keys here (cart, session,
tokens, order history). Values are opaque bytes; decoding and the
"corrupt means empty" policy belong to the caller.

# Backends

  - file: one document per key inside a profile directory (default).
  - redis: namespaced keys on a shared Redis instance.
  - postgres: rows in the client_state table.
  - memory: process-local map, for tests and dry runs.

Every backend scopes its keys by a profile name so several local profiles can
share one Redis or PostgreSQL instance.
*/
package localstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by [Store.Get] when the key holds no value.
var ErrNotFound = errors.New("localstore: key not found")

// keyPattern restricts keys to names that are safe as file names and SQL values alike.
var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// # Contracts

// Store is the persistence contract consumed by the Shop Store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	/*
		Get returns the raw value stored under key.

		Returns:
		  - []byte: the stored blob
		  - error: [ErrNotFound] if absent, or backend failures
	*/
	Get(context context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(context context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(context context.Context, key string) error

	// Ping verifies that the backend is reachable.
	Ping(context context.Context) error

	// Close releases backend resources.
	Close() error
}

// checkKey rejects keys outside [keyPattern].
func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("localstore: invalid key %q", key)
	}
	return nil
}
