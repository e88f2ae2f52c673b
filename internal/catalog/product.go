// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package catalog defines the canonical product records the client works with.

Every backend product shape is mapped onto [Product] by the remote package's
adapters; nothing else in the client ever sees backend field names such as
product_name or image_url. Products are read-only: the client never creates
or mutates them.
*/
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/rayaw/storefront/pkg/slug"
)

// # Domain Entities

// Product is the canonical, read-only product record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
}

// Path returns the "<id>-<slug>" path segment UI components link to.
func (p Product) Path() string {
	return slug.ProductPath(p.ID, p.Name)
}

// Page is one cursor page of products.
type Page struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.NextCursor != ""
}

// Flatten concatenates pages into one ordered sequence, preserving page order.
func Flatten(pages []Page) []Product {
	total := 0
	for _, page := range pages {
		total += len(page.Products)
	}

	products := make([]Product, 0, total)
	for _, page := range pages {
		products = append(products, page.Products...)
	}

	return products
}
