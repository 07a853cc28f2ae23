// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the client-side authentication session.

It owns two pieces of state: the persisted bearer token pair and the
current-user value derived from it. The session is a two-state machine —
Anonymous (no token, no user) and Authenticated (token present, user
populated) — and the authoritative answer to "am I logged in" is always a
fresh identity fetch, never a cached login response.

Architecture:

  - Manager: Orchestrates login, logout, and identity verification.
  - Token Store: Abstracted persistence for the bearer pair.
  - Observers: Dependent state (the cart) reacts to every user transition.
*/
package session

import "time"

// # Domain Entities

// User represents the authenticated storefront customer, as returned by the
// identity endpoint. ID and Email are immutable; Role and Status are mutable
// by the server only.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may call the admin surface.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns a human-friendly name, falling back to the email
// address when no name fields are populated.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// # Roles

// Known values of the server-owned role field.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// # Field Identifiers

// Global field names for validation in the session domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// MinPasswordLength is the shortest password accepted locally; the server
// enforces its own policy on top.
const MinPasswordLength = 8
