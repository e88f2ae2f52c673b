// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rayaw/storefront/internal/platform/constants"
)

// RedisStore implements [Store] on Redis strings without expiry.
type RedisStore struct {
	client  *redis.Client
	profile string
}

// NewRedisStore creates a Redis-backed store scoped to profile.
func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{client: client, profile: profile}
}

// redisKey builds the namespaced key: state:<profile>:<key>.
func (repository *RedisStore) redisKey(key string) string {
	return constants.RedisPrefixState + repository.profile + ":" + key
}

/*
Get retrieves the blob stored under key.

Returns:
  - []byte: raw value
  - error: ErrNotFound if absent, or connectivity errors
*/
func (repository *RedisStore) Get(context context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	value, err := repository.client.Get(context, repository.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_state_get_failed: %w", err)
	}

	return value, nil
}

// Set stores value under key with no TTL.
func (repository *RedisStore) Set(context context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if err := repository.client.Set(context, repository.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis_state_set_failed: %w", err)
	}

	return nil
}

// Delete removes key.
func (repository *RedisStore) Delete(context context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if err := repository.client.Del(context, repository.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis_state_delete_failed: %w", err)
	}

	return nil
}

// Ping verifies that the Redis client is healthy.
func (repository *RedisStore) Ping(context context.Context) error {
	if err := repository.client.Ping(context).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (repository *RedisStore) Close() error {
	return repository.client.Close()
}
