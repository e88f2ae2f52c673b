// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rayaw/storefront/pkg/slug"
)

/*
TestFrom covers accent stripping and separator collapsing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Oversized Sweater", "oversized-sweater"},
		{"Classic  Knit -- Pullover!", "classic-knit-pullover"},
		{"Café Crème", "cafe-creme"},
		{"  ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

/*
TestProductPath prefixes the id.
*/
func TestProductPath(t *testing.T) {
	assert.Equal(t, "p1-oversized-sweater", slug.ProductPath("p1", "Oversized Sweater"))
	assert.Equal(t, "p2", slug.ProductPath("p2", "!!!"))
}
