// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tokenstore persists the bearer token pair that authenticates the
client against the storefront API.

The pair is the only durable client-side state in Velora. It carries no
expiry metadata and no structural link between the two values: a stored pair
is simply "believed valid until a request fails".

Architecture:

  - Store: Abstracted persistence contract.
  - FileStore: Default backend, one JSON file in the user config directory.
  - MemoryStore: Ephemeral backend for tests and --no-persist runs.
  - RedisStore: Shared backend for kiosk / shared-terminal deployments.
*/
package tokenstore

import "context"

// Pair is an access/refresh bearer token pair.
//
// Either value may be empty; a zero Pair represents the logged-out state.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsZero reports whether no token material is present.
func (p Pair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// # Persistence Contract

// Store defines the persistence contract for the token pair.
type Store interface {

	/*
		Save persists both token values, replacing any previous pair.

		Parameters:
		  - context: context.Context
		  - pair: Pair

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, pair Pair) error

	/*
		Load retrieves the stored pair. A missing pair is not an error:
		it returns a zero Pair, which callers treat as logged out.

		Parameters:
		  - context: context.Context

		Returns:
		  - Pair: Stored pair, or the zero Pair when absent
		  - error: Retrieval failures
	*/
	Load(context context.Context) (Pair, error)

	/*
		Clear removes both values. It is idempotent: clearing an empty
		store succeeds.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context) error
}
