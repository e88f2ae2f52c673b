// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package remote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/remote"
)

/*
TestDecodeAuth_Shapes verifies every accepted auth shape maps onto the same
canonical result.
*/
func TestDecodeAuth_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		shape   remote.AuthShape
		token   string
		refresh string
	}{
		{
			name:    "envelope",
			payload: `{"success":true,"message":"ok","data":{"user_info":{"id":7,"first_name":"Ama","email":"ama@x.com"},"access_token":"A","refresh_token":"R"}}`,
			shape:   remote.ShapeEnvelope,
			token:   "A",
			refresh: "R",
		},
		{
			name:    "user wrapped with token",
			payload: `{"user":{"id":"7","first_name":"Ama","email":"ama@x.com"},"token":"A"}`,
			shape:   remote.ShapeUserWrapped,
			token:   "A",
		},
		{
			name:    "user wrapped with nested token",
			payload: `{"user":{"id":"7","first_name":"Ama","email":"ama@x.com","token":"A"}}`,
			shape:   remote.ShapeUserWrapped,
			token:   "A",
		},
		{
			name:    "flat identity",
			payload: `{"id":7,"first_name":"Ama","email":"ama@x.com","access_token":"A"}`,
			shape:   remote.ShapeFlatIdentity,
			token:   "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := remote.DecodeAuth([]byte(tt.payload))
			require.NoError(t, err)

			assert.Equal(t, tt.shape, result.Shape)
			assert.Equal(t, tt.token, result.AccessToken)
			assert.Equal(t, tt.refresh, result.RefreshToken)
			assert.Equal(t, "7", result.Identity.ID)
			assert.Equal(t, "Ama", result.Identity.FirstName)
			assert.Equal(t, "ama@x.com", result.Identity.Email)
		})
	}
}

/*
TestDecodeAuth_Rejects covers bodies that must not produce a session.
*/
func TestDecodeAuth_Rejects(t *testing.T) {
	t.Run("success false keeps backend message", func(t *testing.T) {
		_, err := remote.DecodeAuth([]byte(`{"success":false,"message":"Invalid credentials"}`))
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeUpstream, ae.Code)
		assert.Equal(t, "Invalid credentials", ae.Raw)
	})

	rejected := map[string]string{
		"missing token":    `{"user":{"id":"7","email":"ama@x.com"}}`,
		"missing identity": `{"access_token":"A"}`,
		"envelope no user": `{"success":true,"data":{"access_token":"A"}}`,
		"not an object":    `["A"]`,
		"not json":         `<html>`,
	}

	for name, payload := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := remote.DecodeAuth([]byte(payload))
			assert.ErrorIs(t, err, remote.ErrUnrecognizedShape)
		})
	}
}

/*
TestDecodeProductPage maps both list shapes and the backend field aliases.
*/
func TestDecodeProductPage(t *testing.T) {
	t.Run("page with cursor", func(t *testing.T) {
		payload := `{"data":[
			{"id":1,"product_name":"Tee","product_description":"Cotton","price":"120.50","image_url":"/tee.png","product_status":"active","category":"tops"},
			{"name":"No id","price":5}
		],"meta":{"next_cursor":"c2"}}`

		decoding, err := remote.DecodeProductPage([]byte(payload), "GHS")
		require.NoError(t, err)

		assert.Equal(t, remote.ProductShapePage, decoding.Shape)
		assert.Equal(t, 1, decoding.Skipped)
		assert.Equal(t, "c2", decoding.Page.NextCursor)
		require.Len(t, decoding.Page.Products, 1)

		product := decoding.Page.Products[0]
		assert.Equal(t, "1", product.ID)
		assert.Equal(t, "Tee", product.Name)
		assert.Equal(t, "Cotton", product.Description)
		assert.True(t, decimal.RequireFromString("120.50").Equal(product.Price))
		assert.Equal(t, "/tee.png", product.Image)
		assert.Equal(t, "active", product.Status)
		assert.Equal(t, "GHS", product.Currency)
	})

	t.Run("bare list is a final page", func(t *testing.T) {
		payload := `[{"id":"a","name":"Cap","price":40,"image":"/cap.png","status":"active","currency":"usd"}]`

		decoding, err := remote.DecodeProductPage([]byte(payload), "GHS")
		require.NoError(t, err)

		assert.Equal(t, remote.ProductShapeBareList, decoding.Shape)
		assert.False(t, decoding.Page.HasNext())
		require.Len(t, decoding.Page.Products, 1)
		assert.Equal(t, "Cap", decoding.Page.Products[0].Name)
		assert.Equal(t, "USD", decoding.Page.Products[0].Currency)
	})

	t.Run("malformed item does not sink the page", func(t *testing.T) {
		payload := `{"data":[
			{"id":"p1","name":"Tee","price":100},
			{"id":"p2","name":"Broken","price":""},
			{"id":true,"name":"Odd id","price":5},
			{"name":"No id","price":5}
		],"meta":{"next_cursor":"c2"}}`

		decoding, err := remote.DecodeProductPage([]byte(payload), "GHS")
		require.NoError(t, err)

		assert.Equal(t, 2, decoding.Malformed)
		assert.Equal(t, 1, decoding.Skipped)
		assert.Equal(t, "c2", decoding.Page.NextCursor)
		require.Len(t, decoding.Page.Products, 1)
		assert.Equal(t, "p1", decoding.Page.Products[0].ID)
	})

	t.Run("bare list with malformed item", func(t *testing.T) {
		decoding, err := remote.DecodeProductPage([]byte(`[{"id":"a","price":1},{"id":"b","price":{}}]`), "GHS")
		require.NoError(t, err)

		assert.Equal(t, 1, decoding.Malformed)
		require.Len(t, decoding.Page.Products, 1)
		assert.Equal(t, "a", decoding.Page.Products[0].ID)
	})

	t.Run("object without data", func(t *testing.T) {
		_, err := remote.DecodeProductPage([]byte(`{"items":[]}`), "GHS")
		assert.ErrorIs(t, err, remote.ErrUnrecognizedShape)
	})
}

/*
TestDecodeProduct accepts enveloped and flat single-product bodies.
*/
func TestDecodeProduct(t *testing.T) {
	product, shape, err := remote.DecodeProduct([]byte(`{"success":true,"data":{"id":9,"product_name":"Hoodie","price":300}}`), "GHS")
	require.NoError(t, err)
	assert.Equal(t, remote.ProductShapeEnveloped, shape)
	assert.Equal(t, "9", product.ID)
	assert.Equal(t, "Hoodie", product.Name)

	product, shape, err = remote.DecodeProduct([]byte(`{"id":"9","name":"Hoodie","price":"300"}`), "GHS")
	require.NoError(t, err)
	assert.Equal(t, remote.ProductShapeFlat, shape)
	assert.True(t, decimal.NewFromInt(300).Equal(product.Price))

	_, _, err = remote.DecodeProduct([]byte(`{"name":"Hoodie"}`), "GHS")
	assert.ErrorIs(t, err, remote.ErrUnrecognizedShape)
}
