// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/remote"
	"github.com/rayaw/storefront/internal/shop"
)

// twoPages serves p1,p2 then p3 with no further cursor.
func twoPages() map[string]catalog.Page {
	return map[string]catalog.Page{
		"":   {Products: []catalog.Product{product("p1", 10), product("p2", 20)}, NextCursor: "c2"},
		"c2": {Products: []catalog.Product{product("p3", 30)}},
	}
}

func productIDs(products []catalog.Product) []string {
	ids := make([]string, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}
	return ids
}

/*
TestFetchNextPage_FlattensInOrder pages through the catalog until the end.
*/
func TestFetchNextPage_FlattensInOrder(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRemote{pages: twoPages()}
	store := newStore(t, fake, localstore.NewMemoryStore())

	assert.False(t, store.HasNextPage())
	assert.Empty(t, store.Products())

	require.True(t, store.FetchNextPage(ctx))
	assert.Equal(t, []string{"p1", "p2"}, productIDs(store.Products()))
	assert.True(t, store.HasNextPage())

	require.True(t, store.FetchNextPage(ctx))
	assert.Equal(t, []string{"p1", "p2", "p3"}, productIDs(store.Products()))
	assert.False(t, store.HasNextPage())

	// End of list: no request, nothing appended.
	assert.False(t, store.FetchNextPage(ctx))
	list, _ := fake.calls()
	assert.Equal(t, 2, list)

	state := store.CatalogState()
	assert.Equal(t, 2, state.Pages)
	assert.Equal(t, 3, state.Count)
	assert.False(t, state.IsLoading)
	assert.False(t, state.IsFetchingNextPage)
	assert.Empty(t, state.Error)
}

/*
TestFetchNextPage_FailureIsRecorded keeps loaded pages and raises no
notification.
*/
func TestFetchNextPage_FailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRemote{pages: twoPages()}
	store := newStore(t, fake, localstore.NewMemoryStore())
	require.True(t, store.FetchNextPage(ctx))

	fake.mu.Lock()
	fake.listErr = apperr.FromStatus(503, "maintenance")
	fake.mu.Unlock()

	assert.False(t, store.FetchNextPage(ctx))
	assert.Equal(t, []string{"p1", "p2"}, productIDs(store.Products()))
	assert.True(t, store.HasNextPage())
	assert.Equal(t, "maintenance", store.CatalogState().Error)

	_, found := store.Notification()
	assert.False(t, found)

	// A later success clears the recorded error.
	fake.mu.Lock()
	fake.listErr = nil
	fake.mu.Unlock()

	require.True(t, store.FetchNextPage(ctx))
	assert.Empty(t, store.CatalogState().Error)
}

/*
TestFetchNextPage_ConcurrentCallsShareRequest blocks the first request and
checks that a second caller joins it.
*/
func TestFetchNextPage_ConcurrentCallsShareRequest(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRemote{
		pages: map[string]catalog.Page{"": {Products: []catalog.Product{product("p1", 10)}}},
		gate:  make(chan struct{}),
	}
	store := newStore(t, fake, localstore.NewMemoryStore())

	var wg sync.WaitGroup
	results := make([]bool, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = store.FetchNextPage(ctx)
	}()

	require.Eventually(t, store.IsLoading, time.Second, time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = store.FetchNextPage(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	close(fake.gate)
	wg.Wait()

	list, _ := fake.calls()
	assert.Equal(t, 1, list)
	assert.Equal(t, []bool{true, true}, results)
	assert.Len(t, store.Products(), 1)
	assert.False(t, store.IsLoading())
}

/*
TestFetchNextPage_CancelledWaiter returns false without disturbing the
request it was waiting on.
*/
func TestFetchNextPage_CancelledWaiter(t *testing.T) {
	fake := &fakeRemote{
		pages: map[string]catalog.Page{"": {Products: []catalog.Product{product("p1", 10)}}},
		gate:  make(chan struct{}),
	}
	store := newStore(t, fake, localstore.NewMemoryStore())

	done := make(chan bool)
	go func() { done <- store.FetchNextPage(context.Background()) }()
	require.Eventually(t, store.IsLoading, time.Second, time.Millisecond)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, store.FetchNextPage(cancelled))

	close(fake.gate)
	assert.True(t, <-done)
}

/*
TestFetchNextPage_OriginatorCancelled keeps the shared request alive for the
callers that joined it after the caller that started it gives up.
*/
func TestFetchNextPage_OriginatorCancelled(t *testing.T) {
	fake := &fakeRemote{
		pages: map[string]catalog.Page{"": {Products: []catalog.Product{product("p1", 10)}}},
		gate:  make(chan struct{}),
	}
	store := newStore(t, fake, localstore.NewMemoryStore())

	originator, cancel := context.WithCancel(context.Background())
	started := make(chan bool)
	go func() { started <- store.FetchNextPage(originator) }()
	require.Eventually(t, store.IsLoading, time.Second, time.Millisecond)

	joined := make(chan bool)
	go func() { joined <- store.FetchNextPage(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.False(t, <-started)

	close(fake.gate)
	assert.True(t, <-joined)

	list, _ := fake.calls()
	assert.Equal(t, 1, list)
	assert.Equal(t, []string{"p1"}, productIDs(store.Products()))
	assert.Empty(t, store.CatalogState().Error)
}

/*
TestEnsureCatalog_Staleness refetches the first page only once the stale
window has passed.
*/
func TestEnsureCatalog_Staleness(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	fake := &fakeRemote{pages: twoPages()}
	store := newStore(t, fake, localstore.NewMemoryStore(), withClock(clock))

	require.True(t, store.EnsureCatalog(ctx))
	require.True(t, store.FetchNextPage(ctx))
	assert.Equal(t, now, store.CatalogState().FetchedAt)

	now = now.Add(4 * time.Minute)
	require.True(t, store.EnsureCatalog(ctx))
	list, _ := fake.calls()
	assert.Equal(t, 2, list)
	assert.Len(t, store.Products(), 3)

	now = now.Add(2 * time.Minute)
	require.True(t, store.EnsureCatalog(ctx))
	list, _ = fake.calls()
	assert.Equal(t, 3, list)

	// The refetch replaced the loaded pages with a fresh first page.
	assert.Equal(t, []string{"p1", "p2"}, productIDs(store.Products()))
	assert.Equal(t, now, store.CatalogState().FetchedAt)
}

/*
TestProduct_Lookup prefers the loaded catalog and falls back to the remote.
*/
func TestProduct_Lookup(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRemote{
		pages:    twoPages(),
		products: map[string]catalog.Product{"p9": product("p9", 90)},
	}
	store := newStore(t, fake, localstore.NewMemoryStore())
	require.True(t, store.FetchNextPage(ctx))

	found, err := store.Product(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Product p2", found.Name)
	_, remoteCalls := fake.calls()
	assert.Zero(t, remoteCalls)

	found, err = store.Product(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "p9", found.ID)

	_, err = store.Product(ctx, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	_, remoteCalls = fake.calls()
	assert.Equal(t, 2, remoteCalls)
}

/*
TestProduct_UpstreamFailure keeps remote outages apart from unknown ids.
*/
func TestProduct_UpstreamFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		expected string
		status   int
	}{
		{"remote 5xx", apperr.FromStatus(503, "maintenance"), apperr.CodeUpstream, 503},
		{"transport", apperr.Upstream(errors.New("connection refused")), apperr.CodeUpstream, 502},
		{"unreadable body", fmt.Errorf("remote_get_product_failed: %w", remote.ErrUnrecognizedShape), apperr.CodeUpstream, 502},
		{"remote 404", apperr.FromStatus(404, ""), apperr.CodeNotFound, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, &fakeRemote{productErr: tt.err}, localstore.NewMemoryStore())

			_, err := store.Product(ctx, "p1")
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.expected, ae.Code)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestSnapshot_IsConsistent reads every UI field at once.
*/
func TestSnapshot_IsConsistent(t *testing.T) {
	store := newStore(t, &fakeRemote{}, localstore.NewMemoryStore())
	store.AddToCart(product("p1", 100), "M")
	store.AddToCart(product("p2", 5), "S")

	snapshot := store.Snapshot()

	assert.Nil(t, snapshot.Session)
	assert.Len(t, snapshot.Cart, 2)
	assert.Equal(t, 2, snapshot.CartCount)
	assert.Equal(t, "105", snapshot.TotalPrice.String())
	assert.NotEmpty(t, snapshot.FormattedTotal)
	require.NotNil(t, snapshot.Notification)
	assert.Equal(t, shop.KindSuccess, snapshot.Notification.Kind)
}
