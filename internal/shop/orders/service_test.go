// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orders_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
	"github.com/taibuivan/velora/internal/shop/orders"
	"github.com/taibuivan/velora/internal/users/session"
)

// newService wires an orders service; authenticated controls whether the
// session manager holds a user.
func newService(t *testing.T, authenticated bool, handler http.Handler) *orders.Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(session.User{ID: "u-1", Email: "ana@example.com"})
	})
	if handler != nil {
		mux.Handle("/", handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := tokenstore.NewMemoryStore()
	logger := slog.New(slog.DiscardHandler)
	client := api.NewClient(server.URL, tokens, logger)
	sessions := session.NewManager(client, tokens, logger)

	if authenticated {
		ctx := context.Background()
		require.NoError(t, tokens.Save(ctx, tokenstore.Pair{AccessToken: "tok"}))
		require.NoError(t, sessions.CheckAuth(ctx))
	}

	return orders.NewService(client, sessions, logger)
}

/*
TestService_Create tests checkout: the payload shape and the Idempotency-Key
header on the request.
*/
func TestService_Create(t *testing.T) {
	var gotKey string
	service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/orders/", r.URL.Path)

		gotKey = r.Header.Get("Idempotency-Key")

		var input orders.CreateInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "addr-1", input.ShippingAddressID)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "o-1", "status": "pending", "total": "42.00"}`))
	}))

	order, err := service.Create(context.Background(), orders.CreateInput{
		ShippingAddressID: "addr-1",
		PaymentMethod:     "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 42.0, order.Total.Float64())
	assert.NotEmpty(t, gotKey, "checkout must carry an idempotency key")
}

/*
TestService_Create_Guard tests that checkout requires a session.
*/
func TestService_Create_Guard(t *testing.T) {
	service := newService(t, false, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("anonymous checkout must not reach the network")
	}))

	_, err := service.Create(context.Background(), orders.CreateInput{ShippingAddressID: "addr-1"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Create_Validation tests the required shipping address.
*/
func TestService_Create_Validation(t *testing.T) {
	service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the network")
	}))

	_, err := service.Create(context.Background(), orders.CreateInput{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_List tests the guarded history listing.
*/
func TestService_List(t *testing.T) {
	service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/", r.URL.Path)
		w.Write([]byte(`[{"id": "o-2", "status": "shipped", "total": 18.5}, {"id": "o-1", "status": "delivered", "total": "42.00"}]`))
	}))

	list, err := service.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "o-2", list[0].ID)
	assert.Equal(t, 18.5, list[0].Total.Float64())
}

/*
TestService_Get tests the single-order path and the guard.
*/
func TestService_Get(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/orders/o-1", r.URL.Path)
			w.Write([]byte(`{"id": "o-1", "status": "pending", "items": [{"product_name": "Mug", "quantity": 2, "price": "9.99"}]}`))
		}))

		order, err := service.Get(context.Background(), "o-1")
		require.NoError(t, err)

		require.Len(t, order.Items, 1)
		assert.Equal(t, "Mug", order.Items[0].ProductName)
	})

	t.Run("anonymous", func(t *testing.T) {
		service := newService(t, false, nil)

		_, err := service.Get(context.Background(), "o-1")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}
