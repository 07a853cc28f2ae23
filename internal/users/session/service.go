// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
	"github.com/taibuivan/velora/internal/platform/validate"
)

// # Session Manager

// Manager owns the current-user value and the token pair lifecycle.
//
// # Concurrency
//
// Manager is safe for concurrent reads; user transitions are single-writer.
// Observers are invoked outside the lock, in registration order.
type Manager struct {
	apiClient *api.Client
	tokens    tokenstore.Store
	logger    *slog.Logger

	mu        sync.RWMutex
	user      *User
	observers []func(*User)
}

// NewManager constructs a [Manager]. The session starts Anonymous; call
// [Manager.CheckAuth] to restore a persisted session.
func NewManager(apiClient *api.Client, tokens tokenstore.Store, logger *slog.Logger) *Manager {
	return &Manager{
		apiClient: apiClient,
		tokens:    tokens,
		logger:    logger,
	}
}

// OnChange registers an observer invoked after every user transition.
// The observer receives nil when the session becomes Anonymous.
//
// Registration is not synchronized with transitions; register all observers
// during wiring, before the first operation.
func (manager *Manager) OnChange(observer func(*User)) {
	manager.observers = append(manager.observers, observer)
}

// CurrentUser returns a snapshot of the authenticated user, or false when
// the session is Anonymous.
func (manager *Manager) CurrentUser() (User, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.user == nil {
		return User{}, false
	}
	return *manager.user, true
}

// IsAuthenticated reports whether a user is currently populated.
func (manager *Manager) IsAuthenticated() bool {
	_, ok := manager.CurrentUser()
	return ok
}

// # Identity Verification

/*
CheckAuth reconciles the session with the token store and the identity
endpoint. It is invoked at startup and after every login.

Description: With no stored token the session is immediately Anonymous and no
network call is made. With a token, the identity endpoint decides: success
populates the user; ANY failure clears the token store and transitions to
Anonymous. A failed identity check is treated as an invalid or expired
session, never retried — a clean logged-out state beats a stuck one.

Parameters:
  - context: context.Context

Returns:
  - error: Token store failures only; identity rejection is a normal outcome
*/
func (manager *Manager) CheckAuth(context context.Context) error {
	pair, err := manager.tokens.Load(context)
	if err != nil {
		return fmt.Errorf("session_load_tokens_failed: %w", err)
	}

	// No token: Anonymous without a network call.
	if pair.AccessToken == "" {
		manager.setUser(nil)
		return nil
	}

	var user User
	if err := manager.apiClient.Get(context, api.Prefix+"/auth/me", &user); err != nil {
		manager.logger.Info("session_identity_check_failed",
			slog.Int("status", apperr.StatusOf(err)),
		)

		// Fatal-to-session policy: drop the credentials entirely.
		if clearErr := manager.tokens.Clear(context); clearErr != nil {
			return fmt.Errorf("session_clear_tokens_failed: %w", clearErr)
		}
		manager.setUser(nil)
		return nil
	}

	manager.setUser(&user)
	return nil
}

// # Login / Logout

/*
Login authenticates with the storefront API and establishes a session.

Description: Validates credentials locally, exchanges them for a token pair,
persists the pair, then re-runs [Manager.CheckAuth] so the user value comes
from a fresh identity fetch rather than from the login response.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - error: Validation, request, or persistence failures
*/
func (manager *Manager) Login(context context.Context, email, password string) error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password)

	if err := validator.Err(); err != nil {
		return err
	}

	payload := map[string]string{"email": email, "password": password}

	var tokens tokenResponse
	if err := manager.apiClient.Post(context, api.Prefix+"/auth/login", payload, &tokens); err != nil {
		return err
	}

	pair := tokenstore.Pair{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if err := manager.tokens.Save(context, pair); err != nil {
		return fmt.Errorf("session_save_tokens_failed: %w", err)
	}

	if err := manager.CheckAuth(context); err != nil {
		return err
	}

	// CheckAuth cleared the freshly-issued pair: the identity endpoint
	// rejected a token the login endpoint just minted.
	if !manager.IsAuthenticated() {
		return apperr.Unauthorized("Login succeeded but the session could not be verified")
	}

	manager.logger.Info("session_established", slog.String("email", email))
	return nil
}

/*
Logout terminates the session locally.

Description: Clears the token store and transitions to Anonymous
synchronously. No server call is made — the design has no server-side
session invalidation.

Parameters:
  - context: context.Context

Returns:
  - error: Token store failures
*/
func (manager *Manager) Logout(context context.Context) error {
	if err := manager.tokens.Clear(context); err != nil {
		return fmt.Errorf("session_clear_tokens_failed: %w", err)
	}

	manager.setUser(nil)
	manager.logger.Info("session_terminated")
	return nil
}

// # Account Lifecycle

// RegisterInput holds the data required to enroll a new customer.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

/*
Register creates a new customer account.

Description: Validates input locally, then delegates to the registration
endpoint. Registration does not establish a session; the caller logs in
afterwards.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created account profile
  - error: Validation or request failures
*/
func (manager *Manager) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var user User
	if err := manager.apiClient.Post(context, api.Prefix+"/auth/register", input, &user); err != nil {
		return nil, err
	}

	manager.logger.Info("account_registered", slog.String("email", input.Email))
	return &user, nil
}

/*
ChangePassword rotates the authenticated user's password.

Parameters:
  - context: context.Context
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Guard, validation, or request failures
*/
func (manager *Manager) ChangePassword(context context.Context, currentPassword, newPassword string) error {
	if !manager.IsAuthenticated() {
		return apperr.Guard("change your password")
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength)

	if err := validator.Err(); err != nil {
		return err
	}

	payload := map[string]string{
		"old_password": currentPassword,
		"new_password": newPassword,
	}
	return manager.apiClient.Post(context, api.Prefix+"/auth/change-password", payload, nil)
}

// # Internal State

// tokenResponse is the login endpoint's response envelope.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// setUser replaces the current user and notifies observers outside the lock.
func (manager *Manager) setUser(user *User) {
	manager.mu.Lock()
	manager.user = user
	observers := manager.observers
	manager.mu.Unlock()

	for _, observer := range observers {
		observer(user)
	}
}
