// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire client.

It defines default timeouts, rate limits, storage keys and user-facing
messages that are shared between the Shop Store, the remote client and the
local facade.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the facade server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Storage Keys: Names of the blobs kept in the Local Persistent Store.
  - Messages: Fixed notification texts.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "rayaw-storefront"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout covers a full remote round-trip plus encoding.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Storage Keys

const (
	// KeyCart holds the JSON array of cart lines.
	KeyCart = "rayaw_cart"

	// KeyUser holds the JSON session identity.
	KeyUser = "user"

	// KeyAccessToken holds the access token issued at login.
	KeyAccessToken = "access_token"

	// KeyRefreshToken holds the refresh token issued at login.
	KeyRefreshToken = "refresh_token"

	// KeyOrders holds the JSON array of checkout receipts.
	KeyOrders = "rayaw_orders"
)

// # Notification Messages

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoginFailed        = "Login failed. Please check your connection."
	MsgSignupSuccess      = "Account created successfully!"
	MsgDuplicateAccount   = "Phone number or email already taken"
	MsgSignupFailed       = "Signup failed. Please try again."
	MsgLoggedOut          = "Logged out."
	MsgProfileUpdated     = "Profile updated!"
	MsgAddedToCart        = "Added to cart"
	MsgPaymentSuccess     = "Payment successful!"

	// MsgWelcomeBack is formatted with the session display name.
	MsgWelcomeBack = "Welcome back, %s!"
)

// # Session Defaults

const (
	// FallbackDisplayName is used when the identity carries no usable name or email.
	FallbackDisplayName = "Customer"

	// DuplicateMarker is searched for in the raw backend error on signup failure.
	DuplicateMarker = "duplicate"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	// RedisPrefixState namespaces all client state keys: state:<profile>:<key>.
	RedisPrefixState = "state:"
)
