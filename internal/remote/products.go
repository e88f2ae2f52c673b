// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rayaw/storefront/internal/catalog"
	"github.com/rayaw/storefront/pkg/pagination"
)

/*
ListProducts fetches one cursor page of the catalog.

Parameters:
  - ctx: request context
  - params: page size and the cursor from the previous page ("" for the first)

Returns:
  - catalog.Page: canonical products plus the next cursor ("" on the last page)
  - error: *apperr.AppError on non-2xx, ErrUnrecognizedShape on a malformed 2xx
*/
func (client *Client) ListProducts(ctx context.Context, params pagination.Params) (catalog.Page, error) {
	payload, err := client.do(ctx, http.MethodGet, []string{"products"}, params.Values(), nil)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("remote_list_products_failed: %w", err)
	}

	decoding, err := DecodeProductPage(payload, client.defaultCurrency)
	if err != nil {
		client.logger.Warn("remote_product_shape_rejected", slog.Any("error", err))
		return catalog.Page{}, fmt.Errorf("remote_list_products_failed: %w", err)
	}

	if decoding.Skipped > 0 {
		client.logger.Warn("remote_products_skipped",
			slog.Int("skipped", decoding.Skipped),
			slog.String("reason", "missing id"),
		)
	}
	if decoding.Malformed > 0 {
		client.logger.Warn("remote_products_skipped",
			slog.Int("skipped", decoding.Malformed),
			slog.String("reason", "malformed item"),
		)
	}

	client.logger.Debug("remote_products_decoded",
		slog.String("shape", decoding.Shape.String()),
		slog.Int("count", len(decoding.Page.Products)),
		slog.Bool("has_next", decoding.Page.HasNext()),
	)

	return decoding.Page, nil
}

// GetProduct fetches a single product by id.
func (client *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	payload, err := client.do(ctx, http.MethodGet, []string{"products", id}, nil, nil)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("remote_get_product_failed: %w", err)
	}

	product, shape, err := DecodeProduct(payload, client.defaultCurrency)
	if err != nil {
		client.logger.Warn("remote_product_shape_rejected",
			slog.String("product_id", id),
			slog.Any("error", err),
		)
		return catalog.Product{}, fmt.Errorf("remote_get_product_failed: %w", err)
	}

	client.logger.Debug("remote_product_decoded", slog.String("shape", shape.String()))
	return product, nil
}
