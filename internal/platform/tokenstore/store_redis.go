// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements [Store] against a shared Redis instance.
//
// Intended for kiosk and shared-terminal deployments where several client
// processes must observe the same session. Keys are namespaced per terminal.
type RedisStore struct {
	client   *redis.Client
	terminal string
	ttl      time.Duration
}

// NewRedisStore creates a Redis-backed [Store] for the given terminal ID.
//
// A zero ttl stores the pair without expiration, matching the file backend's
// "valid until a request fails" semantics.
func NewRedisStore(client *redis.Client, terminal string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, terminal: terminal, ttl: ttl}
}

// accessKey returns the Redis key holding the access token.
func (store *RedisStore) accessKey() string {
	return fmt.Sprintf("velora:token:%s:access", store.terminal)
}

// refreshKey returns the Redis key holding the refresh token.
func (store *RedisStore) refreshKey() string {
	return fmt.Sprintf("velora:token:%s:refresh", store.terminal)
}

/*
Save persists both values as independent keys.

Parameters:
  - context: context.Context
  - pair: Pair

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Save(context context.Context, pair Pair) error {
	if err := store.client.Set(context, store.accessKey(), pair.AccessToken, store.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore_redis_save_failed: %w", err)
	}
	if err := store.client.Set(context, store.refreshKey(), pair.RefreshToken, store.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore_redis_save_failed: %w", err)
	}
	return nil
}

/*
Load retrieves the pair. Absent keys yield empty strings, not errors.

Parameters:
  - context: context.Context

Returns:
  - Pair: Stored pair, or the zero Pair
  - error: Connectivity errors
*/
func (store *RedisStore) Load(context context.Context) (Pair, error) {
	access, err := store.client.Get(context, store.accessKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Pair{}, fmt.Errorf("tokenstore_redis_load_failed: %w", err)
	}

	refresh, err := store.client.Get(context, store.refreshKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Pair{}, fmt.Errorf("tokenstore_redis_load_failed: %w", err)
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

/*
Clear deletes both keys. Deleting absent keys succeeds.

Parameters:
  - context: context.Context

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Clear(context context.Context) error {
	if err := store.client.Del(context, store.accessKey(), store.refreshKey()).Err(); err != nil {
		return fmt.Errorf("tokenstore_redis_clear_failed: %w", err)
	}
	return nil
}
