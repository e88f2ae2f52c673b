// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Package ctxkey defines typed context keys used by middleware, handlers and
// the remote client.
//
// # Safety
//
// A private, unexported key type prevents collisions with third-party
// packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
