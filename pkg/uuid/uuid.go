// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package uuid provides time-ordered identifiers for the storefront client.

They tag outgoing Remote API calls (X-Request-ID) and seed checkout order
numbers. Version 7 keeps them sortable by creation time, which makes request
logs easy to follow.
*/
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Short returns the last n hexadecimal digits of a fresh UUIDv7, upper-cased.
// The tail is the random part of a v7 value.
func Short(n int) string {
	hex := strings.ReplaceAll(New(), "-", "")
	if n <= 0 || n > len(hex) {
		n = len(hex)
	}
	return strings.ToUpper(hex[len(hex)-n:])
}
