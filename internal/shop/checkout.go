// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"log/slog"
	"strings"

	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/validate"
	"github.com/rayaw/storefront/pkg/uuid"
)

// Checkout form fields, as reported in validation details.
const (
	FieldCart          = "cart"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldPaymentMethod = "payment_method"
)

/*
Checkout simulates payment for the current cart.

The form is validated first; a validation failure changes nothing. On
success the cart is snapshotted into a [Receipt], the receipt is prepended
to the order history, the cart is cleared and "Payment successful!" is shown.
No payment provider is contacted.

Returns:
  - Receipt: the completed order
  - error: *apperr.AppError (VALIDATION_ERROR) describing the invalid fields
*/
func (store *Store) Checkout(input CheckoutInput) (Receipt, error) {
	customer := Customer{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(string(input.PaymentMethod))))

	store.mu.Lock()

	validator := &validate.Validator{}
	validator.
		Custom(FieldCart, len(store.cart) == 0, "Your cart is empty").
		Required(FieldName, customer.Name).
		Email(FieldEmail, customer.Email).
		Phone(FieldPhone, customer.Phone).
		OneOf(FieldPaymentMethod, string(method), string(PaymentMomo), string(PaymentCard))

	if err := validator.Err(); err != nil {
		store.mu.Unlock()
		return Receipt{}, err
	}

	receipt := Receipt{
		OrderID:       "ORD-" + uuid.Short(5),
		CreatedAt:     store.opts.Now().UTC(),
		Customer:      customer,
		PaymentMethod: method,
		Lines:         cloneLines(store.cart),
		Total:         totalPrice(store.cart),
		Currency:      store.opts.DefaultCurrency,
	}
	if store.cart[0].Currency != "" {
		receipt.Currency = store.cart[0].Currency
	}

	store.orders = append([]Receipt{receipt}, store.orders...)
	store.cart = []CartLine{}

	seq := store.nextSeq()
	staged := []write{
		store.stage(constants.KeyOrders, store.orders),
		store.stage(constants.KeyCart, store.cart),
	}
	store.mu.Unlock()

	store.persist(seq, staged...)

	store.logger.Info("checkout_completed",
		slog.String("order_id", receipt.OrderID),
		slog.String("payment_method", string(method)),
		slog.String("total", receipt.Total.String()),
	)
	store.ShowNotification(constants.MsgPaymentSuccess, KindSuccess)
	return receipt, nil
}

// Orders returns the order history, newest first.
func (store *Store) Orders() []Receipt {
	store.mu.Lock()
	defer store.mu.Unlock()

	return append([]Receipt{}, store.orders...)
}
