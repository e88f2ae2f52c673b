// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package apperr defines the centralized error taxonomy for the storefront client.

It bridges three worlds: failures reported by the Remote API, validation
failures raised before a request is ever made, and the JSON errors the local
facade returns to UI components.

Architecture:

  - AppError: machine-readable Code, client-safe Message, and the raw backend text.
  - Classification: [FromStatus] maps a Remote API status code onto the taxonomy.
  - Mapping: every AppError carries the HTTP status the facade responds with.

The Shop Store never lets an AppError escape to its callers; it reduces them
to notifications. The facade and the remote client use them directly.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the canonical error type of the storefront client.
//
// # Security
//
// Cause is for logging only and is never sent to UI components.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the status code observed upstream or returned by the facade.
	HTTPStatus int `json:"-"`
	// Raw is the free-text error reported by the Remote API, if any.
	Raw string `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Product") // Returns "Product not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Conflict creates a 409 [AppError] for duplicate accounts.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Upstream creates a 502 [AppError] for a Remote API failure that fits no
// narrower class (server errors, unreadable bodies, transport failures).
func Upstream(cause error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    "The store service is unavailable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// # Classification

// FromStatus classifies a non-2xx Remote API response.
//
// raw is the backend's free-text error (its "error" or "message" field) and is
// kept verbatim in [AppError.Raw]; it is also used as the message when present.
func FromStatus(status int, raw string) *AppError {
	var ae *AppError

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		ae = Unauthorized("Invalid credentials")
	case http.StatusNotFound:
		ae = NotFound("Resource")
	case http.StatusConflict:
		ae = Conflict("Resource already exists")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		ae = ValidationError("Request rejected")
	case http.StatusTooManyRequests:
		ae = RateLimited(1)
	default:
		ae = Upstream(fmt.Errorf("remote status %d", status))
	}

	ae.HTTPStatus = status
	ae.Raw = raw
	if raw != "" {
		ae.Message = raw
	}

	return ae
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
