// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayaw/storefront/internal/api"
	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/platform/localstore"
	"github.com/rayaw/storefront/internal/shop"
)

func newServer(t *testing.T, checks ...api.HealthCheck) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := shop.New(shop.Deps{Storage: localstore.NewMemoryStore(), Logger: logger}, shop.Options{})
	t.Cleanup(store.Close)

	liveness, readiness := api.NewHealthHandlers(logger, checks...)
	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: "0", Environment: "production"}

	return api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Shop:      shop.NewHandler(store),
	}).Handler()
}

func get(t *testing.T, handler http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	for name, values := range header {
		request.Header[name] = values
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_MountsShopUnderVersionedPrefix reaches the facade through the
full middleware chain.
*/
func TestServer_MountsShopUnderVersionedPrefix(t *testing.T) {
	handler := newServer(t)

	recorder := get(t, handler, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"data":{"lines":[],"count":0,"total":"0","formatted_total":"GHS 0.00"}}`, recorder.Body.String())
}

/*
TestServer_CORS only echoes loopback origins outside development.
*/
func TestServer_CORS(t *testing.T) {
	handler := newServer(t)

	local := get(t, handler, "/health", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, "http://localhost:5173", local.Header().Get("Access-Control-Allow-Origin"))

	foreign := get(t, handler, "/health", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, foreign.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestReadiness reports each probe and degrades on failure.
*/
func TestReadiness(t *testing.T) {
	healthy := api.HealthCheck{Name: "localstore", Probe: localstore.NewMemoryStore().Ping}
	broken := api.HealthCheck{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("ready", func(t *testing.T) {
		recorder := get(t, newServer(t, healthy), "/ready", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"ready"`)
	})

	t.Run("degraded", func(t *testing.T) {
		recorder := get(t, newServer(t, healthy, broken), "/ready", nil)
		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var body struct {
			Data struct {
				Status string `json:"status"`
				Checks []struct {
					Name  string `json:"name"`
					OK    bool   `json:"ok"`
					Error string `json:"error"`
				} `json:"checks"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Data.Status)
		require.Len(t, body.Data.Checks, 2)
		assert.True(t, body.Data.Checks[0].OK)
		assert.Equal(t, "connection refused", body.Data.Checks[1].Error)
	})
}
