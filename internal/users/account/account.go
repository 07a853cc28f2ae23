// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the authenticated customer's own profile.

It is a thin client over the /users/me surface: reads return the same User
shape the identity endpoint serves; writes are partial updates carrying only
the fields the caller actually changed.
*/
package account

// # Field Identifiers

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// MaxNameLength bounds profile name fields locally before the request.
const MaxNameLength = 100
