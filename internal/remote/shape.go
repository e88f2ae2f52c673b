// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/pkg/money"
)

// ErrUnrecognizedShape is returned when a 2xx body matches none of the
// accepted response shapes.
var ErrUnrecognizedShape = errors.New("remote: unrecognized response shape")

// # Auth Shapes

// AuthShape tags which backend variant an auth response was decoded from.
type AuthShape int

const (
	ShapeUnrecognized AuthShape = iota

	// ShapeEnvelope is {success, message, data:{user_info, access_token, refresh_token}}.
	ShapeEnvelope

	// ShapeUserWrapped is {user:{...}, access_token|token, refresh_token}.
	ShapeUserWrapped

	// ShapeFlatIdentity carries the identity fields and token at the top level.
	ShapeFlatIdentity
)

// String returns the log-friendly name of the shape.
func (s AuthShape) String() string {
	switch s {
	case ShapeEnvelope:
		return "envelope"
	case ShapeUserWrapped:
		return "user_wrapped"
	case ShapeFlatIdentity:
		return "flat_identity"
	default:
		return "unrecognized"
	}
}

// Identity is the user identity as reported by the backend, before any
// display-name derivation.
type Identity struct {
	ID           string
	FirstName    string
	FirstNameAlt string
	Name         string
	LastName     string
	Email        string
	Phone        string
}

// isEmpty reports whether the identity carries nothing that names a user.
func (i Identity) isEmpty() bool {
	return i.ID == "" && i.Email == "" && i.FirstName == "" && i.FirstNameAlt == "" && i.Name == ""
}

// AuthResult is the canonical outcome of a successful login or signup.
type AuthResult struct {
	Shape        AuthShape
	Identity     Identity
	AccessToken  string
	RefreshToken string
}

// flexString accepts a JSON string or number (ids arrive as both).
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type rawIdentity struct {
	ID           flexString `json:"id"`
	FirstName    string     `json:"first_name"`
	FirstNameAlt string     `json:"firstName"`
	Name         string     `json:"name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	Phone        string     `json:"phone"`
	Token        string     `json:"token"`
}

func (r rawIdentity) identity() Identity {
	return Identity{
		ID:           string(r.ID),
		FirstName:    strings.TrimSpace(r.FirstName),
		FirstNameAlt: strings.TrimSpace(r.FirstNameAlt),
		Name:         strings.TrimSpace(r.Name),
		LastName:     strings.TrimSpace(r.LastName),
		Email:        strings.TrimSpace(r.Email),
		Phone:        firstNonEmpty(r.PhoneNumber, r.Phone),
	}
}

type rawEnvelope struct {
	Success *bool           `json:"success"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type rawAuthData struct {
	UserInfo     *rawIdentity `json:"user_info"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type rawUserWrapped struct {
	User         *rawIdentity `json:"user"`
	AccessToken  string       `json:"access_token"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

type rawFlatIdentity struct {
	rawIdentity
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

/*
DecodeAuth maps a 2xx login/signup body onto [AuthResult].

Every accepted shape must yield both a token and an identity. An envelope with
success=false is reported as an [apperr.AppError] carrying the backend message.

Returns:
  - *AuthResult: canonical result tagged with the matched shape
  - error: ErrUnrecognizedShape (wrapped) or the envelope's failure
*/
func DecodeAuth(payload []byte) (*AuthResult, error) {
	fields, err := objectFields(payload)
	if err != nil {
		return nil, err
	}

	var result *AuthResult

	switch {
	case fields["success"] || fields["data"]:
		var envelope rawEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}

		if envelope.Success != nil && !*envelope.Success {
			return nil, envelopeFailure(text(envelope.Message))
		}

		var data rawAuthData
		if err := json.Unmarshal(envelope.Data, &data); err != nil || data.UserInfo == nil {
			return nil, fmt.Errorf("%w: envelope without user_info", ErrUnrecognizedShape)
		}

		result = &AuthResult{
			Shape:        ShapeEnvelope,
			Identity:     data.UserInfo.identity(),
			AccessToken:  data.AccessToken,
			RefreshToken: data.RefreshToken,
		}

	case fields["user"]:
		var wrapped rawUserWrapped
		if err := json.Unmarshal(payload, &wrapped); err != nil || wrapped.User == nil {
			return nil, fmt.Errorf("%w: user is not an object", ErrUnrecognizedShape)
		}

		result = &AuthResult{
			Shape:        ShapeUserWrapped,
			Identity:     wrapped.User.identity(),
			AccessToken:  firstNonEmpty(wrapped.AccessToken, wrapped.Token, wrapped.User.Token),
			RefreshToken: wrapped.RefreshToken,
		}

	default:
		var flat rawFlatIdentity
		if err := json.Unmarshal(payload, &flat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}

		result = &AuthResult{
			Shape:        ShapeFlatIdentity,
			Identity:     flat.identity(),
			AccessToken:  firstNonEmpty(flat.AccessToken, flat.Token),
			RefreshToken: flat.RefreshToken,
		}
	}

	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: %s response without token", ErrUnrecognizedShape, result.Shape)
	}

	if result.Identity.isEmpty() {
		return nil, fmt.Errorf("%w: %s response without identity", ErrUnrecognizedShape, result.Shape)
	}

	return result, nil
}

// # Product Shapes

// ProductShape tags which backend variant a product body was decoded from.
type ProductShape int

const (
	ProductShapeUnrecognized ProductShape = iota

	// ProductShapePage is {data:[...], meta:{next_cursor}}.
	ProductShapePage

	// ProductShapeBareList is a top-level JSON array.
	ProductShapeBareList

	// ProductShapeEnveloped is {success?, data:{...}} around a single product.
	ProductShapeEnveloped

	// ProductShapeFlat is a single product object.
	ProductShapeFlat
)

// String returns the log-friendly name of the shape.
func (s ProductShape) String() string {
	switch s {
	case ProductShapePage:
		return "page"
	case ProductShapeBareList:
		return "bare_list"
	case ProductShapeEnveloped:
		return "enveloped"
	case ProductShapeFlat:
		return "flat"
	default:
		return "unrecognized"
	}
}

type rawProduct struct {
	ID                 flexString      `json:"id"`
	ProductName        string          `json:"product_name"`
	Name               string          `json:"name"`
	ProductDescription string          `json:"product_description"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Currency           string          `json:"currency"`
	ImageURL           string          `json:"image_url"`
	Image              string          `json:"image"`
	Category           string          `json:"category"`
	ProductStatus      string          `json:"product_status"`
	Status             string          `json:"status"`
}

func (r rawProduct) canonical(defaultCurrency string) catalog.Product {
	return catalog.Product{
		ID:          string(r.ID),
		Name:        firstNonEmpty(r.ProductName, r.Name),
		Description: firstNonEmpty(r.ProductDescription, r.Description),
		Price:       r.Price,
		Currency:    money.NormalizeCode(r.Currency, defaultCurrency),
		Image:       firstNonEmpty(r.ImageURL, r.Image),
		Category:    r.Category,
		Status:      firstNonEmpty(r.ProductStatus, r.Status),
	}
}

// PageDecoding is the outcome of decoding a product list body.
type PageDecoding struct {
	Page  catalog.Page
	Shape ProductShape

	// Skipped counts items dropped for lacking an id.
	Skipped int

	// Malformed counts items dropped because they did not decode.
	Malformed int
}

/*
DecodeProductPage maps a product list body onto a [catalog.Page].

Each item is decoded on its own. Items without an id cannot be addressed by
the cart and are skipped; items that fail to decode are dropped. Neither
fails the page.
*/
func DecodeProductPage(payload []byte, defaultCurrency string) (PageDecoding, error) {
	var items []json.RawMessage
	decoding := PageDecoding{}

	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return decoding, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		decoding.Shape = ProductShapeBareList
	} else {
		var page struct {
			Data *[]json.RawMessage `json:"data"`
			Meta struct {
				NextCursor flexString `json:"next_cursor"`
			} `json:"meta"`
		}

		if err := json.Unmarshal(payload, &page); err != nil {
			return decoding, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		if page.Data == nil {
			return decoding, fmt.Errorf("%w: page without data array", ErrUnrecognizedShape)
		}

		items = *page.Data
		decoding.Shape = ProductShapePage
		decoding.Page.NextCursor = string(page.Meta.NextCursor)
	}

	decoding.Page.Products = make([]catalog.Product, 0, len(items))
	for _, raw := range items {
		var item rawProduct
		if err := json.Unmarshal(raw, &item); err != nil {
			decoding.Malformed++
			continue
		}
		if item.ID == "" {
			decoding.Skipped++
			continue
		}
		decoding.Page.Products = append(decoding.Page.Products, item.canonical(defaultCurrency))
	}

	return decoding, nil
}

/*
DecodeProduct maps a single-product body onto a [catalog.Product].
*/
func DecodeProduct(payload []byte, defaultCurrency string) (catalog.Product, ProductShape, error) {
	fields, err := objectFields(payload)
	if err != nil {
		return catalog.Product{}, ProductShapeUnrecognized, err
	}

	shape := ProductShapeFlat
	body := payload

	if fields["data"] {
		var envelope rawEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return catalog.Product{}, ProductShapeUnrecognized, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		if envelope.Success != nil && !*envelope.Success {
			return catalog.Product{}, ProductShapeEnveloped, envelopeFailure(text(envelope.Message))
		}
		shape = ProductShapeEnveloped
		body = envelope.Data
	}

	var item rawProduct
	if err := json.Unmarshal(body, &item); err != nil {
		return catalog.Product{}, ProductShapeUnrecognized, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if item.ID == "" {
		return catalog.Product{}, ProductShapeUnrecognized, fmt.Errorf("%w: %s product without id", ErrUnrecognizedShape, shape)
	}

	return item.canonical(defaultCurrency), shape, nil
}

// # Helpers

// objectFields decodes the top-level keys of a JSON object.
func objectFields(payload []byte) (map[string]bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}

	present := make(map[string]bool, len(fields))
	for key, value := range fields {
		present[key] = string(value) != "null"
	}
	return present, nil
}

// text renders a raw JSON value as text: strings unquoted, anything else verbatim.
func text(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// envelopeFailure reports a {success:false} body that arrived with a 2xx status.
func envelopeFailure(message string) *apperr.AppError {
	ae := apperr.Upstream(errors.New("remote envelope reported failure"))
	ae.Raw = message
	if message != "" {
		ae.Message = message
	}
	return ae
}

// rawError extracts the backend's free-text error from an error body.
func rawError(payload []byte) string {
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return strings.TrimSpace(string(payload))
	}
	return firstNonEmpty(text(body.Error), text(body.Message))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
