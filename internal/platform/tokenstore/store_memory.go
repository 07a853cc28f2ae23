// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] in process memory.
//
// Sessions do not survive a restart. Used by tests and by runs that must not
// leave credentials on disk.
type MemoryStore struct {
	mu   sync.RWMutex
	pair Pair
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored pair.
func (store *MemoryStore) Save(_ context.Context, pair Pair) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.pair = pair
	return nil
}

// Load returns the stored pair (zero Pair when logged out).
func (store *MemoryStore) Load(_ context.Context) (Pair, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.pair, nil
}

// Clear resets the stored pair. Idempotent.
func (store *MemoryStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.pair = Pair{}
	return nil
}
