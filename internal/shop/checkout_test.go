// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/shop"
)

func validCheckout() shop.CheckoutInput {
	return shop.CheckoutInput{
		Name:          "Ama Mensah",
		Email:         "ama@x.com",
		Phone:         "+233 20 000 0000",
		PaymentMethod: shop.PaymentMomo,
	}
}

// invalidFields returns the field names reported by a validation error.
func invalidFields(t *testing.T, err error) []string {
	t.Helper()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, apperr.CodeValidation, ae.Code)

	fields := make([]string, len(ae.Details))
	for i, detail := range ae.Details {
		fields[i] = detail.Field
	}
	return fields
}

/*
TestCheckout_Validation rejects bad forms without touching the cart.
*/
func TestCheckout_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*shop.CheckoutInput)
		expected []string
	}{
		{"missing name", func(in *shop.CheckoutInput) { in.Name = "  " }, []string{shop.FieldName}},
		{"bad email", func(in *shop.CheckoutInput) { in.Email = "ama" }, []string{shop.FieldEmail}},
		{"bad phone", func(in *shop.CheckoutInput) { in.Phone = "12" }, []string{shop.FieldPhone}},
		{"unknown method", func(in *shop.CheckoutInput) { in.PaymentMethod = "cash" }, []string{shop.FieldPaymentMethod}},
		{"everything", func(in *shop.CheckoutInput) { *in = shop.CheckoutInput{} },
			[]string{shop.FieldName, shop.FieldEmail, shop.FieldPhone, shop.FieldPaymentMethod}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, &fakeRemote{}, localstore.NewMemoryStore())
			store.AddToCart(product("p1", 100), "M")

			input := validCheckout()
			tt.mutate(&input)

			_, err := store.Checkout(input)
			assert.Equal(t, tt.expected, invalidFields(t, err))
			assert.Len(t, store.Cart(), 1)
			assert.Empty(t, store.Orders())
		})
	}
}

/*
TestCheckout_EmptyCart is a validation failure on the cart itself.
*/
func TestCheckout_EmptyCart(t *testing.T) {
	store := newStore(t, &fakeRemote{}, localstore.NewMemoryStore())

	_, err := store.Checkout(validCheckout())

	assert.Equal(t, []string{shop.FieldCart}, invalidFields(t, err))
	assert.Equal(t, "Your cart is empty", apperr.As(err).Details[0].Message)
}

/*
TestCheckout_Success snapshots the cart into a receipt and clears it.
*/
func TestCheckout_Success(t *testing.T) {
	storage := localstore.NewMemoryStore()
	now := time.Date(2026, 7, 4, 15, 30, 0, 0, time.UTC)
	store := newStore(t, &fakeRemote{}, storage, withClock(func() time.Time { return now }))

	store.AddToCart(product("p1", 100), "M")
	store.AddToCart(product("p1", 100), "M")
	store.AddToCart(product("p2", 35), "S")
	lines := store.Cart()

	input := validCheckout()
	input.PaymentMethod = " CARD "
	receipt, err := store.Checkout(input)
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-[0-9A-F]{5}$`, receipt.OrderID)
	assert.Equal(t, now, receipt.CreatedAt)
	assert.Equal(t, shop.PaymentCard, receipt.PaymentMethod)
	assert.Equal(t, "Ama Mensah", receipt.Customer.Name)
	assert.True(t, decimal.NewFromInt(235).Equal(receipt.Total))
	assert.Equal(t, "GHS", receipt.Currency)
	assert.Len(t, receipt.Lines, len(lines))

	assert.Empty(t, store.Cart())
	assert.Equal(t, 0, store.CartCount())
	requireNotification(t, store, shop.KindSuccess, constants.MsgPaymentSuccess)

	assert.JSONEq(t, `[]`, stored(t, storage, constants.KeyCart))

	var persisted []shop.Receipt
	require.NoError(t, json.Unmarshal([]byte(stored(t, storage, constants.KeyOrders)), &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, receipt.OrderID, persisted[0].OrderID)
}

/*
TestOrders_NewestFirst survives a reload.
*/
func TestOrders_NewestFirst(t *testing.T) {
	storage := localstore.NewMemoryStore()
	store := newStore(t, &fakeRemote{}, storage)

	var ids []string
	for _, id := range []string{"p1", "p2", "p3"} {
		store.AddToCart(product(id, 10), "M")
		receipt, err := store.Checkout(validCheckout())
		require.NoError(t, err)
		ids = append([]string{receipt.OrderID}, ids...)
	}

	orderIDs := func(orders []shop.Receipt) []string {
		out := make([]string, len(orders))
		for i, order := range orders {
			out[i] = order.OrderID
		}
		return out
	}

	assert.Equal(t, ids, orderIDs(store.Orders()))

	reloaded := newStore(t, &fakeRemote{}, storage)
	assert.Equal(t, ids, orderIDs(reloaded.Orders()))
	assert.Equal(t, "p3", reloaded.Orders()[0].Lines[0].ID)
}

/*
TestOrders_EmptyIsNotNil serializes as an empty array.
*/
func TestOrders_EmptyIsNotNil(t *testing.T) {
	store := newStore(t, &fakeRemote{}, localstore.NewMemoryStore())

	assert.Equal(t, "[]", mustJSON(t, store.Orders()))
}
