// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements [Store] with one file per key under <dir>/<profile>.
//
// Writes go to a temporary file that is renamed over the target, so a crash
// mid-write leaves either the old or the new blob, never a torn one.
type FileStore struct {
	mu   sync.Mutex
	root string
}

// NewFileStore creates the profile directory if needed and returns a store rooted there.
func NewFileStore(dir, profile string) (*FileStore, error) {
	if err := checkKey(profile); err != nil {
		return nil, fmt.Errorf("localstore: invalid profile: %w", err)
	}

	root := filepath.Join(dir, profile)
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("localstore_file_mkdir_failed: %w", err)
	}

	return &FileStore{root: root}, nil
}

// path returns the on-disk location of key.
func (store *FileStore) path(key string) string {
	return filepath.Join(store.root, key+".json")
}

/*
Get reads the file backing key.

Returns:
  - []byte: raw file content
  - error: ErrNotFound when the file does not exist
*/
func (store *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(store.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("localstore_file_read_failed: %w", err)
	}

	return data, nil
}

// Set atomically replaces the file backing key.
func (store *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	tmp, err := os.CreateTemp(store.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("localstore_file_create_failed: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("localstore_file_write_failed: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("localstore_file_close_failed: %w", err)
	}

	if err := os.Rename(tmpName, store.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("localstore_file_rename_failed: %w", err)
	}

	return nil
}

// Delete removes the file backing key.
func (store *FileStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore_file_delete_failed: %w", err)
	}

	return nil
}

// Ping checks that the profile directory is still present.
func (store *FileStore) Ping(context.Context) error {
	info, err := os.Stat(store.root)
	if err != nil {
		return fmt.Errorf("localstore: ping failed: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("localstore: %s is not a directory", store.root)
	}
	return nil
}

// Close is a no-op.
func (store *FileStore) Close() error { return nil }
