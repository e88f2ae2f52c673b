// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Partial updates (such as a profile edit) model "field not provided" as a nil
pointer; these helpers keep that pattern free of boilerplate.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer, returning the zero value if nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Assign copies *src into *dst when src is non-nil and reports whether it did.
func Assign[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}
