// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/pkg/pagination"
)

// catalogFetchKey is the singleflight key every page fetch shares, so a
// first-page reload and a next-page fetch never run side by side.
const catalogFetchKey = "catalog"

// catalogState holds the fetched pages and their loading flags.
type catalogState struct {
	pages        []catalog.Page
	fetchedAt    time.Time
	loading      bool
	fetchingNext bool
	lastError    string
	fetches      singleflight.Group
}

// # Catalog Lookups

// Products returns every fetched product, pages flattened in order.
func (store *Store) Products() []catalog.Product {
	store.mu.Lock()
	defer store.mu.Unlock()

	return catalog.Flatten(store.catalog.pages)
}

// HasNextPage reports whether the last fetched page carries a cursor.
func (store *Store) HasNextPage() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.hasNextPage()
}

// IsLoading reports whether the first page is being fetched.
func (store *Store) IsLoading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.catalog.loading
}

// IsFetchingNextPage reports whether a follow-up page is being fetched.
func (store *Store) IsFetchingNextPage() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.catalog.fetchingNext
}

// CatalogState returns all catalog flags at once.
func (store *Store) CatalogState() CatalogState {
	store.mu.Lock()
	defer store.mu.Unlock()

	count := 0
	for _, page := range store.catalog.pages {
		count += len(page.Products)
	}

	return CatalogState{
		HasNextPage:        store.hasNextPage(),
		IsLoading:          store.catalog.loading,
		IsFetchingNextPage: store.catalog.fetchingNext,
		Pages:              len(store.catalog.pages),
		Count:              count,
		FetchedAt:          store.catalog.fetchedAt,
		Error:              store.catalog.lastError,
	}
}

// # Catalog Fetching

/*
FetchNextPage fetches the page after the last one, or the first page when
nothing is loaded yet.

Concurrent calls share one request. Failures are logged and recorded in
[CatalogState.Error]; they raise no notification.

Returns:
  - bool: true when a page was appended
*/
func (store *Store) FetchNextPage(ctx context.Context) bool {
	return store.fetchPage(ctx, false)
}

/*
EnsureCatalog loads the first page when the catalog is empty or older than
the stale window, replacing whatever was loaded.

Returns:
  - bool: true when fresh products are available
*/
func (store *Store) EnsureCatalog(ctx context.Context) bool {
	store.mu.Lock()
	fresh := len(store.catalog.pages) > 0 &&
		store.opts.Now().Sub(store.catalog.fetchedAt) < store.opts.StaleAfter
	store.mu.Unlock()

	if fresh {
		return true
	}
	return store.fetchPage(ctx, true)
}

/*
Product resolves a product by id from the loaded catalog, falling back to the
Remote API.

Returns:
  - catalog.Product: the product
  - error: NOT_FOUND when the Remote API does not know the id; any other
    failure is returned as an upstream [apperr.AppError]
*/
func (store *Store) Product(ctx context.Context, id string) (catalog.Product, error) {
	for _, product := range store.Products() {
		if product.ID == id {
			return product, nil
		}
	}

	product, err := store.remote.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}

	if apperr.HasCode(err, apperr.CodeNotFound) {
		return catalog.Product{}, apperr.NotFound("Product")
	}

	store.logger.Warn("product_lookup_failed", slog.String("product_id", id), slog.Any("error", err))
	if apperr.IsAppError(err) {
		return catalog.Product{}, err
	}
	return catalog.Product{}, apperr.Upstream(err)
}

/*
fetchPage joins or starts the shared page request. reset replaces the loaded
pages with the first page instead of appending the next one.

The request runs detached from ctx: a caller that gives up stops waiting but
the others still get the page.
*/
func (store *Store) fetchPage(ctx context.Context, reset bool) bool {
	results := store.catalog.fetches.DoChan(catalogFetchKey, func() (any, error) {
		return store.loadPage(context.WithoutCancel(ctx), reset), nil
	})

	select {
	case result := <-results:
		ok, _ := result.Val.(bool)
		return ok
	case <-ctx.Done():
		return false
	}
}

// loadPage runs one page request and folds the result into the catalog.
func (store *Store) loadPage(ctx context.Context, reset bool) bool {
	store.mu.Lock()

	first := reset || len(store.catalog.pages) == 0
	cursor := ""
	if !first {
		last := store.catalog.pages[len(store.catalog.pages)-1]
		if !last.HasNext() {
			store.mu.Unlock()
			return false
		}
		cursor = last.NextCursor
	}

	if first {
		store.catalog.loading = true
	} else {
		store.catalog.fetchingNext = true
	}
	store.mu.Unlock()

	page, err := store.remote.ListProducts(ctx, pagination.NewParams(store.opts.PageSize, cursor))

	store.mu.Lock()
	defer store.mu.Unlock()

	store.catalog.loading = false
	store.catalog.fetchingNext = false

	if err != nil {
		store.catalog.lastError = err.Error()
		store.logger.Warn("catalog_fetch_failed",
			slog.String("cursor", cursor),
			slog.Any("error", err),
		)
		return false
	}

	if first {
		store.catalog.pages = []catalog.Page{page}
		store.catalog.fetchedAt = store.opts.Now()
	} else {
		store.catalog.pages = append(store.catalog.pages, page)
	}
	store.catalog.lastError = ""

	store.logger.Debug("catalog_page_fetched",
		slog.Int("pages", len(store.catalog.pages)),
		slog.Int("products", len(page.Products)),
		slog.Bool("has_next", page.HasNext()),
	)
	return true
}

// hasNextPage must be called with store.mu held.
func (store *Store) hasNextPage() bool {
	n := len(store.catalog.pages)
	return n > 0 && store.catalog.pages[n-1].HasNext()
}

// nextCursor returns the cursor of the last fetched page, if any.
func (store *Store) nextCursor() string {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.hasNextPage() {
		return ""
	}
	return store.catalog.pages[len(store.catalog.pages)-1].NextCursor
}
