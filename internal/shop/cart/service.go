// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/notify"
	"github.com/taibuivan/velora/internal/users/session"
)

// refreshKey coalesces concurrent refetches of the single cart resource.
const refreshKey = "cart"

// # Synchronizer

// Synchronizer owns the local cart snapshot and keeps it reconciled with the
// server-authoritative cart.
//
// # Concurrency
//
// The item list is single-writer / multi-reader. Concurrent Refresh calls
// are de-duplicated through a singleflight group, so a burst of mutations
// costs one refetch and a stale response can never overwrite a newer one.
type Synchronizer struct {
	apiClient *api.Client
	sessions  *session.Manager
	notifier  notify.Notifier
	logger    *slog.Logger

	mu    sync.RWMutex
	items []Item

	flight singleflight.Group
}

// NewSynchronizer constructs a [Synchronizer] and subscribes it to session
// transitions: the cart resets the moment the user becomes absent (no
// network call) and refetches when a user appears.
func NewSynchronizer(
	apiClient *api.Client,
	sessions *session.Manager,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Synchronizer {
	synchronizer := &Synchronizer{
		apiClient: apiClient,
		sessions:  sessions,
		notifier:  notifier,
		logger:    logger,
	}

	sessions.OnChange(func(user *session.User) {
		if user == nil {
			synchronizer.reset()
			return
		}
		if err := synchronizer.Refresh(context.Background()); err != nil {
			logger.Warn("cart_refresh_failed", slog.Any("error", err))
		}
	})

	return synchronizer
}

// # Read Surface

// Items returns a copy of the current cart lines, never the internal slice.
func (synchronizer *Synchronizer) Items() []Item {
	synchronizer.mu.RLock()
	defer synchronizer.mu.RUnlock()

	items := make([]Item, len(synchronizer.items))
	copy(items, synchronizer.items)
	return items
}

// Count returns the sum of quantities across all lines. It is recomputed on
// every call and never stored, so it cannot drift from the list.
func (synchronizer *Synchronizer) Count() int {
	synchronizer.mu.RLock()
	defer synchronizer.mu.RUnlock()

	total := 0
	for _, item := range synchronizer.items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the price-weighted quantity sum for display.
func (synchronizer *Synchronizer) Subtotal() float64 {
	synchronizer.mu.RLock()
	defer synchronizer.mu.RUnlock()

	total := 0.0
	for _, item := range synchronizer.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// # Reconciliation

/*
Refresh replaces the local snapshot with the server's cart.

Description: With no authenticated user the snapshot resets to empty and no
request is made. Otherwise the cart endpoint is fetched (concurrent callers
share one in-flight request) and the local list is replaced wholesale — the
server always wins, there is no incremental merge.

Parameters:
  - context: context.Context

Returns:
  - error: Request failures; the previous snapshot is kept on failure
*/
func (synchronizer *Synchronizer) Refresh(context context.Context) error {
	if !synchronizer.sessions.IsAuthenticated() {
		synchronizer.reset()
		return nil
	}

	result, err, _ := synchronizer.flight.Do(refreshKey, func() (any, error) {
		var response cartResponse
		if err := synchronizer.apiClient.Get(context, api.Prefix+"/cart/", &response); err != nil {
			return nil, err
		}

		items := make([]Item, 0, len(response.Items))
		for _, line := range response.Items {
			items = append(items, line.toItem())
		}
		return items, nil
	})
	if err != nil {
		return fmt.Errorf("cart_refresh_failed: %w", err)
	}

	synchronizer.replace(result.([]Item))
	return nil
}

// # Mutations

/*
Add puts quantity units of a product into the server cart.

Description: Guarded — an Anonymous session fails locally with a notice and
zero network calls. On success the snapshot is resynchronized with a full
refetch; the mutation response itself is not trusted as the new truth.
On failure the local state is untouched (nothing optimistic was applied).

Parameters:
  - context: context.Context
  - product: Product
  - quantity: Units to add; values below 1 are coerced to 1

Returns:
  - error: Guard or request failures
*/
func (synchronizer *Synchronizer) Add(context context.Context, product Product, quantity int) error {
	if !synchronizer.sessions.IsAuthenticated() {
		err := apperr.Guard("add items to your cart")
		synchronizer.notifier.Error(err.Message)
		return err
	}

	if quantity < 1 {
		quantity = 1
	}

	payload := map[string]any{"product_id": product.ID, "quantity": quantity}
	if err := synchronizer.apiClient.Post(context, api.Prefix+"/cart/items", payload, nil); err != nil {
		synchronizer.notifier.Error("Failed to add to cart")
		return err
	}

	synchronizer.notifier.Success("Added to cart")
	synchronizer.refetch(context)
	return nil
}

/*
UpdateQuantity sets the quantity of an existing cart line.

Description: Quantities below 1 are rejected silently — no notice, no
network call, no state change. Otherwise the guarded mutate-then-refetch
pattern applies.

Parameters:
  - context: context.Context
  - itemID: Cart line ID (not a product ID)
  - quantity: New quantity, must be >= 1

Returns:
  - error: Guard or request failures; nil for the silent rejection
*/
func (synchronizer *Synchronizer) UpdateQuantity(context context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if !synchronizer.sessions.IsAuthenticated() {
		err := apperr.Guard("update your cart")
		synchronizer.notifier.Error(err.Message)
		return err
	}

	payload := map[string]any{"quantity": quantity}
	path := fmt.Sprintf("%s/cart/items/%s", api.Prefix, itemID)
	if err := synchronizer.apiClient.Put(context, path, payload, nil); err != nil {
		synchronizer.notifier.Error("Failed to update quantity")
		return err
	}

	synchronizer.refetch(context)
	return nil
}

/*
Remove deletes one line from the server cart.

Parameters:
  - context: context.Context
  - itemID: Cart line ID

Returns:
  - error: Guard or request failures
*/
func (synchronizer *Synchronizer) Remove(context context.Context, itemID string) error {
	if !synchronizer.sessions.IsAuthenticated() {
		err := apperr.Guard("update your cart")
		synchronizer.notifier.Error(err.Message)
		return err
	}

	path := fmt.Sprintf("%s/cart/items/%s", api.Prefix, itemID)
	if err := synchronizer.apiClient.Delete(context, path); err != nil {
		synchronizer.notifier.Error("Failed to remove item")
		return err
	}

	synchronizer.notifier.Success("Removed from cart")
	synchronizer.refetch(context)
	return nil
}

/*
Clear empties the server cart.

Description: After the server confirms, the local list resets directly
instead of refetching — the post-state is trivially known to be empty.

Parameters:
  - context: context.Context

Returns:
  - error: Guard or request failures
*/
func (synchronizer *Synchronizer) Clear(context context.Context) error {
	if !synchronizer.sessions.IsAuthenticated() {
		err := apperr.Guard("update your cart")
		synchronizer.notifier.Error(err.Message)
		return err
	}

	if err := synchronizer.apiClient.Delete(context, api.Prefix+"/cart/"); err != nil {
		synchronizer.notifier.Error("Failed to clear cart")
		return err
	}

	synchronizer.reset()
	synchronizer.notifier.Success("Cart cleared")
	return nil
}

// # Internal State

// refetch resynchronizes after a successful mutation. A refetch failure
// leaves the snapshot stale-but-valid; it is logged, not propagated, because
// the mutation itself already succeeded.
func (synchronizer *Synchronizer) refetch(context context.Context) {
	if err := synchronizer.Refresh(context); err != nil {
		synchronizer.logger.Warn("cart_refetch_failed", slog.Any("error", err))
	}
}

// replace swaps in a new snapshot wholesale.
func (synchronizer *Synchronizer) replace(items []Item) {
	synchronizer.mu.Lock()
	defer synchronizer.mu.Unlock()
	synchronizer.items = items
}

// reset empties the snapshot without any network interaction.
func (synchronizer *Synchronizer) reset() {
	synchronizer.replace(nil)
}
