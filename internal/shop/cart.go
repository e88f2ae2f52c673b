// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/pkg/money"
	"github.com/rayaw/storefront/pkg/slice"
)

// # Cart Lookups

// Cart returns a copy of the cart lines in insertion order.
func (store *Store) Cart() []CartLine {
	store.mu.Lock()
	defer store.mu.Unlock()

	return cloneLines(store.cart)
}

// CartCount returns the sum of all line quantities.
func (store *Store) CartCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return cartCount(store.cart)
}

// TotalPrice returns the sum of price times quantity over all lines.
func (store *Store) TotalPrice() decimal.Decimal {
	store.mu.Lock()
	defer store.mu.Unlock()

	return totalPrice(store.cart)
}

// # Cart Mutations

/*
AddToCart adds one unit of product in size.

An existing (id, size) line is incremented; otherwise a new line with
quantity 1 is appended, copying the product's display fields. Always shows
"Added to cart".
*/
func (store *Store) AddToCart(product catalog.Product, size string) {
	if product.Currency == "" {
		product.Currency = store.opts.DefaultCurrency
	}

	store.mutateCart(func(cart []CartLine) []CartLine {
		index := slices.IndexFunc(cart, func(l CartLine) bool { return l.matches(product.ID, size) })
		if index < 0 {
			return append(cart, newCartLine(product, size))
		}

		cart[index].Quantity = addQuantity(cart[index].Quantity, 1)
		return cart
	})

	store.ShowNotification(constants.MsgAddedToCart, KindSuccess)
}

// RemoveFromCart deletes the (id, size) line. Absent lines are ignored.
func (store *Store) RemoveFromCart(id, size string) {
	store.mutateCart(func(cart []CartLine) []CartLine {
		return slice.Filter(cart, func(l CartLine) bool { return !l.matches(id, size) })
	})
}

// UpdateQuantity sets the (id, size) line to max(1, quantity+delta), with the
// sum saturating at math.MaxInt. Absent lines are ignored.
func (store *Store) UpdateQuantity(id, size string, delta int) {
	store.mutateCart(func(cart []CartLine) []CartLine {
		return slice.Map(cart, func(l CartLine) CartLine {
			if l.matches(id, size) {
				l.Quantity = max(1, addQuantity(l.Quantity, delta))
			}
			return l
		})
	})
}

// ClearCart empties the cart.
func (store *Store) ClearCart() {
	store.mutateCart(func([]CartLine) []CartLine { return []CartLine{} })
}

// mutateCart replaces the cart with the result of apply on a private copy,
// then persists it.
func (store *Store) mutateCart(apply func([]CartLine) []CartLine) {
	store.mu.Lock()
	store.cart = apply(cloneLines(store.cart))
	seq := store.nextSeq()
	staged := store.stage(constants.KeyCart, store.cart)
	store.mu.Unlock()

	store.persist(seq, staged)
}

// # Aggregates

func cartCount(cart []CartLine) int {
	return slice.Reduce(cart, 0, func(total int, l CartLine) int { return addQuantity(total, l.Quantity) })
}

func totalPrice(cart []CartLine) decimal.Decimal {
	return slice.Reduce(cart, decimal.Zero, func(total decimal.Decimal, l CartLine) decimal.Decimal {
		return total.Add(l.Subtotal())
	})
}

// formatTotal renders the total in the cart's currency, or fallback when the
// cart is empty.
func formatTotal(total decimal.Decimal, cart []CartLine, fallback string) string {
	code := fallback
	if len(cart) > 0 && cart[0].Currency != "" {
		code = cart[0].Currency
	}
	return money.Format(total, code)
}

// addQuantity returns q+delta clamped to the int range instead of wrapping.
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return math.MinInt
	}
	return q + delta
}

func cloneLines(cart []CartLine) []CartLine {
	return append(make([]CartLine, 0, len(cart)), cart...)
}

// normalizeCart repairs a loaded cart: quantities below 1 become 1 and
// repeated (id, size) pairs are merged into the first occurrence.
func normalizeCart(lines []CartLine) []CartLine {
	cart := make([]CartLine, 0, len(lines))

	for _, line := range lines {
		if line.ID == "" {
			continue
		}
		line.Quantity = max(1, line.Quantity)

		index := slices.IndexFunc(cart, func(l CartLine) bool { return l.matches(line.ID, line.Size) })
		if index >= 0 {
			cart[index].Quantity = addQuantity(cart[index].Quantity, line.Quantity)
			continue
		}
		cart = append(cart, line)
	}

	return cart
}
