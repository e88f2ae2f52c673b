// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// ErrUnsealFailed is returned by a sealed key whose stored value cannot be
// authenticated (wrong secret, tampering, or a value written before sealing).
var ErrUnsealFailed = errors.New("localstore: sealed value cannot be opened")

// hkdfInfo binds derived keys to this purpose.
const hkdfInfo = "rayaw-storefront localstore seal v1"

// SealedStore wraps a [Store] and encrypts the values of selected keys with
// XChaCha20-Poly1305. Other keys pass through untouched.
type SealedStore struct {
	inner  Store
	sealed map[string]bool
	aead   cipher.AEAD
}

// NewSealedStore derives a key from secret and seals the listed keys.
func NewSealedStore(inner Store, secret string, keys ...string) (*SealedStore, error) {
	if secret == "" {
		return nil, errors.New("localstore: empty sealing secret")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("localstore_seal_derive_failed: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("localstore_seal_init_failed: %w", err)
	}

	sealed := make(map[string]bool, len(keys))
	for _, k := range keys {
		sealed[k] = true
	}

	return &SealedStore{inner: inner, sealed: sealed, aead: aead}, nil
}

// Get opens sealed keys and passes the rest through.
func (store *SealedStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := store.inner.Get(ctx, key)
	if err != nil || !store.sealed[key] {
		return value, err
	}

	nonceSize := store.aead.NonceSize()
	if len(value) < nonceSize {
		return nil, ErrUnsealFailed
	}

	// The key name is the associated data so a blob cannot be moved between keys.
	plain, err := store.aead.Open(nil, value[:nonceSize], value[nonceSize:], []byte(key))
	if err != nil {
		return nil, ErrUnsealFailed
	}

	return plain, nil
}

// Set seals the value when key is in the sealed set.
func (store *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	if !store.sealed[key] {
		return store.inner.Set(ctx, key, value)
	}

	nonce := make([]byte, store.aead.NonceSize(), store.aead.NonceSize()+len(value)+store.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("localstore_seal_nonce_failed: %w", err)
	}

	return store.inner.Set(ctx, key, store.aead.Seal(nonce, nonce, value, []byte(key)))
}

// Delete passes through.
func (store *SealedStore) Delete(ctx context.Context, key string) error {
	return store.inner.Delete(ctx, key)
}

// Ping passes through.
func (store *SealedStore) Ping(ctx context.Context) error { return store.inner.Ping(ctx) }

// Close passes through.
func (store *SealedStore) Close() error { return store.inner.Close() }
