// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/platform/localstore"
)

// backends returns every backend that runs without external services.
func backends(t *testing.T) map[string]localstore.Store {
	t.Helper()

	fileStore, err := localstore.NewFileStore(t.TempDir(), "default")
	require.NoError(t, err)

	sealed, err := localstore.NewSealedStore(localstore.NewMemoryStore(), "s3cret", "access_token")
	require.NoError(t, err)

	return map[string]localstore.Store{
		"memory": localstore.NewMemoryStore(),
		"file":   fileStore,
		"sealed": sealed,
	}
}

/*
TestStore_Contract exercises Get/Set/Delete semantics shared by all backends.
*/
func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			// 1. Missing keys report ErrNotFound
			_, err := store.Get(ctx, "rayaw_cart")
			assert.ErrorIs(t, err, localstore.ErrNotFound)

			// 2. Set then Get round-trips the exact bytes
			require.NoError(t, store.Set(ctx, "rayaw_cart", []byte(`[{"id":"p1"}]`)))
			got, err := store.Get(ctx, "rayaw_cart")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"p1"}]`, string(got))

			// 3. Overwrite replaces the value
			require.NoError(t, store.Set(ctx, "access_token", []byte("tok-2")))
			got, err = store.Get(ctx, "access_token")
			require.NoError(t, err)
			assert.Equal(t, "tok-2", string(got))

			// 4. Delete is idempotent
			require.NoError(t, store.Delete(ctx, "rayaw_cart"))
			require.NoError(t, store.Delete(ctx, "rayaw_cart"))
			_, err = store.Get(ctx, "rayaw_cart")
			assert.ErrorIs(t, err, localstore.ErrNotFound)

			assert.NoError(t, store.Ping(ctx))
		})
	}
}

/*
TestStore_RejectsInvalidKeys ensures keys cannot escape the profile directory.
*/
func TestStore_RejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.Set(ctx, "../etc/passwd", []byte("x")))
			_, err := store.Get(ctx, "Cart")
			assert.Error(t, err)
		})
	}
}

/*
TestFileStore_SurvivesReopen verifies persistence across store instances.
*/
func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := localstore.NewFileStore(dir, "default")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "user", []byte(`{"email":"a@b.c"}`)))

	second, err := localstore.NewFileStore(dir, "default")
	require.NoError(t, err)
	got, err := second.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(got))

	// Profiles are isolated from each other.
	other, err := localstore.NewFileStore(dir, "work")
	require.NoError(t, err)
	_, err = other.Get(ctx, "user")
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	// No temporary files are left behind.
	leftovers, err := filepath.Glob(filepath.Join(dir, "default", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

/*
TestSealedStore_EncryptsSelectedKeys checks that sealed keys never hit the
inner store in clear text and that a wrong secret cannot open them.
*/
func TestSealedStore_EncryptsSelectedKeys(t *testing.T) {
	ctx := context.Background()
	inner := localstore.NewMemoryStore()

	sealed, err := localstore.NewSealedStore(inner, "s3cret", "access_token")
	require.NoError(t, err)

	require.NoError(t, sealed.Set(ctx, "access_token", []byte("jwt-value")))
	require.NoError(t, sealed.Set(ctx, "user", []byte(`{"id":"u1"}`)))

	raw, err := inner.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "jwt-value")

	raw, err = inner.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, string(raw))

	wrong, err := localstore.NewSealedStore(inner, "other", "access_token")
	require.NoError(t, err)
	_, err = wrong.Get(ctx, "access_token")
	assert.ErrorIs(t, err, localstore.ErrUnsealFailed)

	_, err = localstore.NewSealedStore(inner, "")
	assert.Error(t, err)
}

/*
TestOpen_SelectsBackend verifies the factory for the backends that need no service.
*/
func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	fileCfg := &config.Config{StateBackend: config.BackendFile, StateDir: dir, StateProfile: "default"}
	store, err := localstore.Open(ctx, fileCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &localstore.FileStore{}, store)

	_, err = os.Stat(filepath.Join(dir, "default"))
	assert.NoError(t, err)

	memCfg := &config.Config{StateBackend: config.BackendMemory, StateProfile: "default", StateSecret: "k"}
	store, err = localstore.Open(ctx, memCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &localstore.SealedStore{}, store)

	_, err = localstore.Open(ctx, &config.Config{StateBackend: "etcd"}, logger)
	assert.Error(t, err)
}
