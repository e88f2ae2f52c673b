// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Package pagination provides shared types for cursor-paginated list endpoints.
//
// # Overview
//
// The Remote API pages its product list with an opaque cursor: each page
// carries meta.next_cursor, and an empty cursor marks the last page.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 12
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
)

// Params holds the limit and cursor of one page request.
type Params struct {
	Limit  int
	Cursor string
}

// NewParams clamps limit into [1, MaxLimit], falling back to [DefaultLimit].
func NewParams(limit int, cursor string) Params {
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return Params{Limit: limit, Cursor: cursor}
}

// Values encodes the params as query values; an empty cursor is omitted.
func (p Params) Values() url.Values {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(p.Limit))
	if p.Cursor != "" {
		values.Set("cursor", p.Cursor)
	}
	return values
}

// Meta is the cursor metadata of a page.
type Meta struct {
	NextCursor string `json:"next_cursor,omitempty"`
}

// HasNext reports whether another page can be requested.
func (m Meta) HasNext() bool {
	return m.NextCursor != ""
}
