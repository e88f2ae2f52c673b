// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package middleware

import (
	"net/http"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/respond"
)

// SessionChecker reports whether the local client holds a session.
//
// [*shop.Store] satisfies it; tests can pass a stub.
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession blocks account pages while no one is signed in.
//
// # Flow
//  1. Ask the checker whether a session is present.
//  2. If absent, abort with HTTP 401 Unauthorized.
func RequireSession(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !checker.IsAuthenticated() {
				respond.Error(writer, request, apperr.Unauthorized("Sign in to continue"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
