// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/remote"
	"github.com/rayaw/storefront/internal/shop"
	"github.com/rayaw/storefront/pkg/pagination"
)

// fakeRemote is an in-memory Remote API.
type fakeRemote struct {
	mu sync.Mutex

	loginResult  *remote.AuthResult
	loginErr     error
	signupResult *remote.AuthResult
	signupErr    error

	// pages is keyed by the cursor that requests it ("" for the first page).
	pages    map[string]catalog.Page
	listErr  error
	products map[string]catalog.Product

	// productErr, when set, fails every GetProduct call.
	productErr error

	// gate, when set, blocks ListProducts until closed.
	gate chan struct{}

	listCalls    int
	productCalls int
	lastEmail    string
	lastPassword string
}

func (f *fakeRemote) Login(_ context.Context, email, password string) (*remote.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastEmail, f.lastPassword = email, password
	return f.loginResult, f.loginErr
}

func (f *fakeRemote) Signup(_ context.Context, _ remote.SignupRequest) (*remote.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.signupResult, f.signupErr
}

func (f *fakeRemote) ListProducts(ctx context.Context, params pagination.Params) (catalog.Page, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return catalog.Page{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return catalog.Page{}, f.listErr
	}
	page, ok := f.pages[params.Cursor]
	if !ok {
		return catalog.Page{}, apperr.NotFound("Page")
	}
	return page, nil
}

func (f *fakeRemote) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.productCalls++
	if f.productErr != nil {
		return catalog.Product{}, f.productErr
	}
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return catalog.Product{}, fmt.Errorf("remote_get_product_failed: %w", apperr.NotFound("Resource"))
}

func (f *fakeRemote) calls() (list, product int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.productCalls
}

// # Fixtures

func product(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		Currency: "GHS",
		Image:    "/img/" + id + ".png",
		Category: "tops",
		Status:   "active",
	}
}

func authResult(identity remote.Identity) *remote.AuthResult {
	return &remote.AuthResult{
		Shape:        remote.ShapeEnvelope,
		Identity:     identity,
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}
}

// storeOption tweaks the Options used by newStore.
type storeOption func(*shop.Options)

func withClock(now func() time.Time) storeOption {
	return func(o *shop.Options) { o.Now = now }
}

func withTTL(ttl time.Duration) storeOption {
	return func(o *shop.Options) { o.NotificationTTL = ttl }
}

// newStore builds and loads a Store over storage. The notification TTL is
// long unless overridden so tests can observe notifications.
func newStore(t *testing.T, fake *fakeRemote, storage localstore.Store, options ...storeOption) *shop.Store {
	t.Helper()

	opts := shop.Options{NotificationTTL: time.Hour, PageSize: 2}
	for _, option := range options {
		option(&opts)
	}

	store := shop.New(shop.Deps{
		Remote:  fake,
		Storage: storage,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, opts)
	store.Load(context.Background())
	t.Cleanup(store.Close)

	return store
}

// stored reads key from storage, failing the test on any error.
func stored(t *testing.T, storage localstore.Store, key string) string {
	t.Helper()

	raw, err := storage.Get(context.Background(), key)
	require.NoError(t, err)
	return string(raw)
}

func requireNotification(t *testing.T, store *shop.Store, kind shop.NotificationKind, message string) {
	t.Helper()

	notice, ok := store.Notification()
	require.True(t, ok, "expected a notification")
	require.Equal(t, kind, notice.Kind)
	require.Equal(t, message, notice.Message)
}

func mustJSON(t *testing.T, value any) string {
	t.Helper()

	encoded, err := json.Marshal(value)
	require.NoError(t, err)
	return string(encoded)
}
