// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rayaw/storefront/internal/catalog"
)

/*
TestFlatten keeps page order and item order.
*/
func TestFlatten(t *testing.T) {
	pages := []catalog.Page{
		{Products: []catalog.Product{{ID: "p1"}, {ID: "p2"}}, NextCursor: "c1"},
		{Products: nil, NextCursor: "c2"},
		{Products: []catalog.Product{{ID: "p3"}}},
	}

	ids := []string{}
	for _, p := range catalog.Flatten(pages) {
		ids = append(ids, p.ID)
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
	assert.Empty(t, catalog.Flatten(nil))
	assert.True(t, pages[0].HasNext())
	assert.False(t, pages[2].HasNext())
}

/*
TestProduct_Path builds the detail-page segment.
*/
func TestProduct_Path(t *testing.T) {
	p := catalog.Product{ID: "prod-1", Name: "Oversized Sweater"}
	assert.Equal(t, "prod-1-oversized-sweater", p.Path())
}
