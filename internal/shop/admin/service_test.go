// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

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
	"github.com/taibuivan/velora/internal/shop/admin"
	"github.com/taibuivan/velora/internal/users/session"
)

// newService wires an admin service behind a session with the given role;
// an empty role leaves the session Anonymous.
func newService(t *testing.T, role string, handler http.Handler) *admin.Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(session.User{ID: "u-1", Email: "ops@example.com", Role: role})
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

	if role != "" {
		ctx := context.Background()
		require.NoError(t, tokens.Save(ctx, tokenstore.Pair{AccessToken: "tok"}))
		require.NoError(t, sessions.CheckAuth(ctx))
	}

	return admin.NewService(client, sessions, logger)
}

/*
TestService_Guard tests the two-step local guard: Anonymous gets the login
prompt, a customer gets a role rejection — neither reaches the network.
*/
func TestService_Guard(t *testing.T) {
	blocked := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded call must not reach the network")
	})

	t.Run("anonymous", func(t *testing.T) {
		service := newService(t, "", blocked)

		err := service.DeleteProduct(context.Background(), "p1")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("customer", func(t *testing.T) {
		service := newService(t, session.RoleCustomer, blocked)

		err := service.DeleteProduct(context.Background(), "p1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestService_CreateProduct tests the happy path and the local input gate.
*/
func TestService_CreateProduct(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/v1/admin/products", r.URL.Path)

			var input admin.CreateProductInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "SKU-1", input.SKU)
			assert.Equal(t, []int{3}, input.CategoryIDs)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "p-new", "sku": "SKU-1", "name": "Mug", "price": 9.99}`))
		}))

		product, err := service.CreateProduct(context.Background(), admin.CreateProductInput{
			SKU:         "SKU-1",
			Name:        "Mug",
			Price:       9.99,
			CategoryIDs: []int{3},
		})
		require.NoError(t, err)
		assert.Equal(t, "p-new", product.ID)
	})

	t.Run("negative_price", func(t *testing.T) {
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("invalid input must not reach the network")
		}))

		_, err := service.CreateProduct(context.Background(), admin.CreateProductInput{
			SKU:   "SKU-1",
			Name:  "Mug",
			Price: -1,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_CreateCategory tests slug handling: generated from the name when
absent, validated when supplied.
*/
func TestService_CreateCategory(t *testing.T) {
	t.Run("generated_slug", func(t *testing.T) {
		var gotBody map[string]any
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/admin/categories", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"id": 9, "name": "Café & Kitchen", "slug": "cafe-kitchen"}`))
		}))

		category, err := service.CreateCategory(context.Background(), admin.CreateCategoryInput{
			Name: "Café & Kitchen",
		})
		require.NoError(t, err)

		assert.Equal(t, "cafe-kitchen", gotBody["slug"])
		assert.Equal(t, 9, category.ID)
	})

	t.Run("bad_explicit_slug", func(t *testing.T) {
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("invalid input must not reach the network")
		}))

		_, err := service.CreateCategory(context.Background(), admin.CreateCategoryInput{
			Name: "Kitchen",
			Slug: "Not A Slug!",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_ListUsers tests pagination and status-filter parameters.
*/
func TestService_ListUsers(t *testing.T) {
	service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		assert.Equal(t, "active", r.URL.Query().Get("status_filter"))

		json.NewEncoder(w).Encode(admin.UserPage{
			Items: []session.User{{ID: "u-2", Email: "b@example.com"}},
			Total: 51, Page: 2, PageSize: 25,
		})
	}))

	page, err := service.ListUsers(context.Background(), 2, 25, "active")
	require.NoError(t, err)

	assert.Equal(t, 51, page.Total)
	require.Len(t, page.Items, 1)
}

/*
TestService_UpdateUserStatus tests that the status travels as a query
parameter on a bodyless PUT, and that the user ID must be a UUID.
*/
func TestService_UpdateUserStatus(t *testing.T) {
	const userID = "0191e2f3-a4b5-7c6d-8e9f-0a1b2c3d4e5f"

	t.Run("updated", func(t *testing.T) {
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/v1/admin/users/"+userID+"/status", r.URL.Path)
			assert.Equal(t, "suspended", r.URL.Query().Get("new_status"))
			w.WriteHeader(http.StatusNoContent)
		}))

		require.NoError(t, service.UpdateUserStatus(context.Background(), userID, "suspended"))
	})

	t.Run("bad_user_id", func(t *testing.T) {
		service := newService(t, session.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("invalid input must not reach the network")
		}))

		err := service.UpdateUserStatus(context.Background(), "not-a-uuid", "suspended")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
