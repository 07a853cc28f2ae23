// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
)

// newTestClient wires a client against the given handler with an optional
// pre-seeded access token.
func newTestClient(t *testing.T, handler http.Handler, accessToken string, opts ...api.Option) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := tokenstore.NewMemoryStore()
	if accessToken != "" {
		require.NoError(t, tokens.Save(context.Background(), tokenstore.Pair{AccessToken: accessToken}))
	}

	logger := slog.New(slog.DiscardHandler)
	return api.NewClient(server.URL, tokens, logger, opts...)
}

/*
TestClient_AuthHeader tests bearer injection for present and absent tokens.
*/
func TestClient_AuthHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	t.Run("token_present", func(t *testing.T) {
		client := newTestClient(t, handler, "tok-123")
		require.NoError(t, client.Get(context.Background(), "/x", nil))
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("token_absent", func(t *testing.T) {
		client := newTestClient(t, handler, "")
		require.NoError(t, client.Get(context.Background(), "/x", nil))
		assert.Empty(t, gotAuth)
	})
}

/*
TestClient_HeaderMerge tests that caller headers merge without overriding auth.
*/
func TestClient_HeaderMerge(t *testing.T) {
	var gotAuth, gotCustom, gotContentType string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCustom = r.Header.Get("X-Custom")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, handler, "session-token")
	err := client.Get(context.Background(), "/x", nil,
		api.WithHeader("X-Custom", "value"),
		// A hostile or confused caller must not be able to shadow the session
		api.WithHeader("Authorization", "Bearer forged"),
	)
	require.NoError(t, err)

	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.Equal(t, "value", gotCustom)
	assert.Equal(t, "application/json", gotContentType)
}

/*
TestClient_ErrorBody tests server-message extraction and the generic fallback.
*/
func TestClient_ErrorBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server_detail", http.StatusConflict, `{"detail": "Email is already registered"}`, "Email is already registered"},
		{"unparseable_body", http.StatusBadRequest, `<html>nope</html>`, "HTTP 400"},
		{"empty_detail", http.StatusForbidden, `{"other": "field"}`, "HTTP 403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}), "")

			err := client.Get(context.Background(), "/x", nil)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.message, ae.Message)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestClient_RetryTransient tests bounded retry on 503 followed by success.
*/
func TestClient_RetryTransient(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	})

	client := newTestClient(t, handler, "", api.WithMaxRetries(2))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Get(context.Background(), "/x", &out))
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), calls.Load())
}

/*
TestClient_NoRetryOn4xx tests that application errors fail on the first attempt.
*/
func TestClient_NoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "bad input"}`))
	})

	client := newTestClient(t, handler, "", api.WithMaxRetries(3))

	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "bad input", apperr.As(err).Message)
}

/*
TestClient_RequestIDStableAcrossRetries tests that one logical call keeps one ID.
*/
func TestClient_RequestIDStableAcrossRetries(t *testing.T) {
	var ids []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		if len(ids) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, handler, "", api.WithMaxRetries(2))
	require.NoError(t, client.Get(context.Background(), "/x", nil))

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, ids[0], ids[1])
}

/*
TestClient_DecodesResponse tests typed JSON decoding of a 2xx body.
*/
func TestClient_DecodesResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/widgets", r.URL.Path)
		w.Write([]byte(`{"id": "w1", "name": "Widget"}`))
	})

	client := newTestClient(t, handler, "")

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, client.Post(context.Background(), api.Prefix+"/widgets", map[string]string{"name": "Widget"}, &out))
	assert.Equal(t, "w1", out.ID)
	assert.Equal(t, "Widget", out.Name)
}

/*
TestClient_EmptyBody tests that 204-style responses decode into nothing.
*/
func TestClient_EmptyBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, handler, "")
	require.NoError(t, client.Delete(context.Background(), "/x"))
}
