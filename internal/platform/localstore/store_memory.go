// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] with an in-process map.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key.
func (store *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	store.mu.Lock()
	store.values[key] = append([]byte(nil), value...)
	store.mu.Unlock()

	return nil
}

// Delete removes key.
func (store *MemoryStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	store.mu.Lock()
	delete(store.values, key)
	store.mu.Unlock()

	return nil
}

// Ping always succeeds.
func (store *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (store *MemoryStore) Close() error { return nil }
