// Package cache provides a Redis-backed read-through cache for catalog
// aggregates. A nil cache is valid and disables caching entirely, which
// keeps single-node deployments free of the Redis dependency.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"refdata/internal/catalog/core"
)

const keyPrefix = "refdata:"

// Cache stores serialized aggregates keyed by entity kind and ID.
type Cache[A core.Attributes] struct {
	client *redis.Client
	kind   string
	ttl    time.Duration
}

func New[A core.Attributes](client *redis.Client, kind string, ttl time.Duration) *Cache[A] {
	return &Cache[A]{client: client, kind: kind, ttl: ttl}
}

func (c *Cache[A]) key(id uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, c.kind, id)
}

// Get returns the cached aggregate, or (nil, nil) on a miss. Cache errors
// are reported but callers fall through to the store either way.
func (c *Cache[A]) Get(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var agg core.Aggregate[A]
	if err := json.Unmarshal(raw, &agg); err != nil {
		// Stale or corrupt entry; drop it and treat as a miss.
		_ = c.client.Del(ctx, c.key(id)).Err()
		return nil, nil
	}
	return &agg, nil
}

// Set stores the aggregate with the configured TTL.
func (c *Cache[A]) Set(ctx context.Context, agg *core.Aggregate[A]) error {
	if c == nil || c.client == nil || agg == nil {
		return nil
	}
	raw, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(agg.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate removes the entry after any mutation.
func (c *Cache[A]) Invalidate(ctx context.Context, id uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
