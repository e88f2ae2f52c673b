// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Package sec inspects the security tokens the Remote API hands out.
//
// # Architecture
//
// The client never holds the signing key, so it cannot verify a token. It
// only reads the registered claims to decide whether a persisted session is
// still worth restoring. Verification remains the Remote API's job.
package sec

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn from an access token without the key.
type TokenInfo struct {
	// IsJWT reports whether the token parsed as a JWT at all. Opaque tokens
	// (issued by older backends) have no inspectable claims.
	IsJWT bool

	Subject   string
	ExpiresAt time.Time
}

// InspectToken parses raw without verifying its signature.
func InspectToken(raw string) TokenInfo {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info
}

// Expired reports whether the token carries an exp claim that lies before now.
// Tokens without an exp claim never expire from the client's point of view.
func (info TokenInfo) Expired(now time.Time) bool {
	return info.IsJWT && !info.ExpiresAt.IsZero() && now.After(info.ExpiresAt)
}
