// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package remote is the typed HTTP client for the Remote API.

It owns every byte that crosses the wire: request encoding, the outgoing rate
limit, request ids, status mapping into [apperr.AppError] and the adapters
that turn the backend's inconsistent response shapes into canonical records.

Endpoints:

  - POST /login
  - POST /signup
  - GET  /products?limit=N&cursor=C
  - GET  /products/:id
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/ctxutil"
	"github.com/rayaw/storefront/pkg/uuid"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// DefaultPasswordField is the login body key the production backend expects.
const DefaultPasswordField = "user_password"

// Options configures a [Client]. Zero values fall back to sane defaults.
type Options struct {
	BaseURL         string
	Timeout         time.Duration
	RPS             float64
	Burst           int
	PasswordField   string
	DefaultCurrency string

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Remote API. It is safe for concurrent use.
type Client struct {
	baseURL         *url.URL
	httpClient      *http.Client
	limiter         *rate.Limiter
	passwordField   string
	defaultCurrency string
	logger          *slog.Logger
}

/*
New builds a Client from opts.

Returns:
  - *Client: ready-to-use client
  - error: when BaseURL is not an absolute http(s) URL
*/
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("remote: invalid base url %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	passwordField := opts.PasswordField
	if passwordField == "" {
		passwordField = DefaultPasswordField
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:         base,
		httpClient:      httpClient,
		limiter:         rate.NewLimiter(limit, burst),
		passwordField:   passwordField,
		defaultCurrency: opts.DefaultCurrency,
		logger:          logger.With(slog.String("component", "remote")),
	}, nil
}

/*
do performs one request and returns the body of a 2xx response.

Non-2xx statuses become an [apperr.AppError] built by [apperr.FromStatus],
which keeps the backend's raw error text. Transport failures become an
upstream error.
*/
func (client *Client) do(ctx context.Context, method string, path []string, query url.Values, body any) ([]byte, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("remote_rate_wait_failed: %w", err))
	}

	endpoint := client.baseURL.JoinPath(path...)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("remote_encode_failed: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("remote_request_build_failed: %w", err))
	}

	requestID := ctxutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New()
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set(constants.HeaderXRequestID, requestID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	log := client.logger.With(
		slog.String("method", method),
		slog.String("path", endpoint.Path),
		slog.String("request_id", requestID),
	)

	start := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		log.Warn("remote_request_failed", slog.Any("error", err))
		return nil, apperr.Upstream(err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		log.Warn("remote_body_read_failed", slog.Any("error", err))
		return nil, apperr.Upstream(err)
	}

	log.Debug("remote_request_finished",
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		slog.Int("bytes", len(payload)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, apperr.FromStatus(response.StatusCode, rawError(payload))
	}

	return payload, nil
}
