// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
	"github.com/taibuivan/velora/internal/users/account"
	"github.com/taibuivan/velora/internal/users/session"
	"github.com/taibuivan/velora/pkg/pointer"
)

func newService(t *testing.T, authenticated bool, handler http.Handler) *account.Service {
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

	return account.NewService(client, sessions)
}

/*
TestService_Profile tests the guarded profile fetch.
*/
func TestService_Profile(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/users/me", r.URL.Path)
			json.NewEncoder(w).Encode(session.User{ID: "u-1", Email: "ana@example.com", FirstName: "Ana"})
		}))

		user, err := service.Profile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.FirstName)
	})

	t.Run("anonymous", func(t *testing.T) {
		service := newService(t, false, nil)

		_, err := service.Profile(context.Background())
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

/*
TestService_UpdateProfile tests that only provided fields travel in the
partial-update body.
*/
func TestService_UpdateProfile(t *testing.T) {
	var gotBody map[string]any
	service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/users/me", r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		json.NewEncoder(w).Encode(session.User{ID: "u-1", FirstName: "Анна"})
	}))

	user, err := service.UpdateProfile(context.Background(), account.UpdateProfileInput{
		FirstName: pointer.To("Анна"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Анна", user.FirstName)
	assert.Equal(t, "Анна", gotBody["first_name"])
	assert.NotContains(t, gotBody, "last_name", "unset fields must be omitted, not blanked")
}

/*
TestService_UpdateProfile_Validation tests that a provided-but-empty field is
rejected locally.
*/
func TestService_UpdateProfile_Validation(t *testing.T) {
	service := newService(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must not reach the network")
	}))

	_, err := service.UpdateProfile(context.Background(), account.UpdateProfileInput{
		FirstName: pointer.To(""),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
