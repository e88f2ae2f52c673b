// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/remote"
	"github.com/rayaw/storefront/pkg/pagination"
)

// persistTimeout bounds a single write to the local store.
const persistTimeout = 5 * time.Second

// Remote is the subset of the Remote API the Store depends on.
// [*remote.Client] satisfies it.
type Remote interface {
	Login(ctx context.Context, email, password string) (*remote.AuthResult, error)
	Signup(ctx context.Context, req remote.SignupRequest) (*remote.AuthResult, error)
	ListProducts(ctx context.Context, params pagination.Params) (catalog.Page, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

// Deps are the collaborators of a Store.
type Deps struct {
	Remote  Remote
	Storage localstore.Store
	Logger  *slog.Logger
}

// Options tune a Store. Zero values fall back to the defaults below.
type Options struct {
	PageSize        int
	StaleAfter      time.Duration
	NotificationTTL time.Duration
	DefaultCurrency string

	// Now replaces the wall clock in tests.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.PageSize < 1 {
		o.PageSize = pagination.DefaultLimit
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = 5 * time.Minute
	}
	if o.NotificationTTL <= 0 {
		o.NotificationTTL = 3 * time.Second
	}
	if o.DefaultCurrency == "" {
		o.DefaultCurrency = "GHS"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Store is the Shop Store. Create it with [New].
type Store struct {
	remote  Remote
	storage localstore.Store
	logger  *slog.Logger
	opts    Options

	mu      sync.Mutex
	session *Session
	cart    []CartLine
	orders  []Receipt
	catalog catalogState
	notice  noticeState
	closed  bool

	// seq orders persisted snapshots; see persist.
	seq       uint64
	persistMu sync.Mutex
	written   map[string]uint64
}

/*
New constructs a Store with an empty cart and no session.

Call [Store.Load] once before use to restore persisted state.
*/
func New(deps Deps, opts Options) *Store {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{
		remote:  deps.Remote,
		storage: deps.Storage,
		logger:  logger.With(slog.String("component", "shop")),
		opts:    opts.withDefaults(),
		cart:    []CartLine{},
		written: make(map[string]uint64),
	}
}

/*
Load restores the cart, the session and the order history from the local
store.

Corrupt blobs are discarded and treated as absent. The session is restored
only when both the identity and the access token exist; a corrupt identity
clears the stored session, and so does an expired JWT access token when no
refresh token is available.
*/
func (store *Store) Load(ctx context.Context) {
	cart := store.loadCart(ctx)
	orders := store.loadOrders(ctx)
	session := store.loadSession(ctx)

	store.mu.Lock()
	defer store.mu.Unlock()

	store.cart = cart
	store.orders = orders
	store.session = session

	store.logger.Info("store_loaded",
		slog.Int("cart_lines", len(cart)),
		slog.Int("orders", len(orders)),
		slog.Bool("authenticated", session != nil),
	)
}

// Close stops the pending notification timer. The Store stays readable.
func (store *Store) Close() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.closed = true
	store.stopNoticeTimer()
}

// Snapshot returns one consistent view of session, cart and notification.
func (store *Store) Snapshot() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	snapshot := Snapshot{
		Cart:       cloneLines(store.cart),
		CartCount:  cartCount(store.cart),
		TotalPrice: totalPrice(store.cart),
	}
	snapshot.FormattedTotal = formatTotal(snapshot.TotalPrice, store.cart, store.opts.DefaultCurrency)

	if store.session != nil {
		session := *store.session
		snapshot.Session = &session
	}

	if notice, ok := store.currentNotice(); ok {
		snapshot.Notification = &notice
	}

	return snapshot
}

// # Persistence

// readBlob returns the stored bytes of key, or nil when the key is missing,
// unreadable or holds the literal "undefined".
func (store *Store) readBlob(ctx context.Context, key string) []byte {
	if store.storage == nil {
		return nil
	}

	raw, err := store.storage.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			store.logger.Warn("state_read_failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return nil
	}

	return raw
}

// discard deletes a corrupt blob so it is not read again.
func (store *Store) discard(ctx context.Context, key string, cause error) {
	store.logger.Warn("state_blob_discarded", slog.String("key", key), slog.Any("error", cause))

	if err := store.storage.Delete(ctx, key); err != nil {
		store.logger.Warn("state_delete_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (store *Store) loadCart(ctx context.Context) []CartLine {
	raw := store.readBlob(ctx, constants.KeyCart)
	if raw == nil {
		return []CartLine{}
	}

	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		store.discard(ctx, constants.KeyCart, err)
		return []CartLine{}
	}

	return normalizeCart(lines)
}

func (store *Store) loadOrders(ctx context.Context) []Receipt {
	raw := store.readBlob(ctx, constants.KeyOrders)
	if raw == nil {
		return nil
	}

	var orders []Receipt
	if err := json.Unmarshal(raw, &orders); err != nil {
		store.discard(ctx, constants.KeyOrders, err)
		return nil
	}

	return orders
}

// # Write Path

// write is one pending change to the local store. A nil value deletes the key.
type write struct {
	key   string
	value []byte
}

/*
stage encodes the current value of key for persistence. It must be called
with store.mu held, right after the in-memory mutation.

A value that fails to encode is logged and staged as a delete.
*/
func (store *Store) stage(key string, value any) write {
	if value == nil {
		return write{key: key}
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		store.logger.Error("state_encode_failed", slog.String("key", key), slog.Any("error", err))
		return write{key: key}
	}

	return write{key: key, value: encoded}
}

// nextSeq returns the sequence number of the mutation being staged.
// Must be called with store.mu held.
func (store *Store) nextSeq() uint64 {
	store.seq++
	return store.seq
}

/*
persist applies staged writes outside the state lock.

Writes staged by an older mutation never overwrite a newer one: each key
remembers the sequence number it was last written at. Failures are logged;
the in-memory mutation stands.
*/
func (store *Store) persist(seq uint64, writes ...write) {
	if store.storage == nil || len(writes) == 0 {
		return
	}

	store.persistMu.Lock()
	defer store.persistMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	for _, w := range writes {
		if store.written[w.key] > seq {
			continue
		}
		store.written[w.key] = seq

		var err error
		if w.value == nil {
			err = store.storage.Delete(ctx, w.key)
		} else {
			err = store.storage.Set(ctx, w.key, w.value)
		}

		if err != nil {
			store.logger.Warn("state_write_failed", slog.String("key", w.key), slog.Any("error", err))
		}
	}
}
