// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package shop implements the Shop Store: the single source of truth for the
session, the cart, catalog access and the transient notification shown to
the user.

# Architecture

The Store is explicitly constructed with [New], loaded once with
[Store.Load] and torn down with [Store.Close]. It talks to the Remote API
through the [Remote] interface and persists its state through a
[localstore.Store].

Every operation that reaches the Remote API swallows the failure, logs it and
re-expresses it as a [Notification] plus a boolean result. Nothing that
originates upstream is returned to the caller as an error.

# Concurrency

All methods are safe for concurrent use. A single mutex guards state and is
never held while a remote request is in flight, so results apply in
completion order.
*/
package shop

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rayaw/storefront/internal/catalog"
)

// # Domain Entities

// Session is the authenticated identity held client-side.
//
// FirstName holds the derived display name, never an empty string.
type Session struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CartLine is one (product, size, quantity) entry of the cart. Display fields
// are copied from the product when the line is created.
type CartLine struct {
	ID          string          `json:"id"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// Subtotal returns price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) matches(id, size string) bool {
	return l.ID == id && l.Size == size
}

func newCartLine(product catalog.Product, size string) CartLine {
	return CartLine{
		ID:          product.ID,
		Size:        size,
		Quantity:    1,
		Price:       product.Price,
		Currency:    product.Currency,
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		Category:    product.Category,
	}
}

// NotificationKind classifies a notification for rendering.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is the transient message shown to the user. A newer
// notification replaces the current one.
type Notification struct {
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"type"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// PaymentMethod is the checkout payment option.
type PaymentMethod string

const (
	PaymentMomo PaymentMethod = "momo"
	PaymentCard PaymentMethod = "card"
)

// Customer is the contact block of a checkout form.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Receipt is a completed checkout, kept in the local order history.
type Receipt struct {
	OrderID       string          `json:"order_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Lines         []CartLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

// # Operation Inputs

// RegisterInput is the signup form.
type RegisterInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// ProfileUpdate is a partial session update. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// # Read Models

// CatalogState exposes the catalog loading flags.
type CatalogState struct {
	HasNextPage        bool      `json:"has_next_page"`
	IsLoading          bool      `json:"is_loading"`
	IsFetchingNextPage bool      `json:"is_fetching_next_page"`
	Pages              int       `json:"pages"`
	Count              int       `json:"count"`
	FetchedAt          time.Time `json:"fetched_at,omitzero"`
	Error              string    `json:"error,omitempty"`
}

// Snapshot is one consistent view of the Store for rendering.
type Snapshot struct {
	Session        *Session        `json:"session"`
	Cart           []CartLine      `json:"cart"`
	CartCount      int             `json:"cart_count"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	FormattedTotal string          `json:"formatted_total"`
	Notification   *Notification   `json:"notification"`
}
