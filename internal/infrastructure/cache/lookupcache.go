package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/fitment/internal/infrastructure/metrics"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// LookupCache stores the dropdown option lists and header counters between requests.
type LookupCache interface {
	// Get decodes the cached value of key into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

const (
	lookupKeyPrefix = "fitment:lookup:"
	lookupTTLJitter = 0.2 // up to 20% extra TTL (anti-stampede)
)

// RedisLookupCache implements LookupCache with JSON values under a shared key prefix.
type RedisLookupCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisLookupCache creates a Redis-backed lookup cache with the given base TTL
func NewRedisLookupCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisLookupCache {
	return &RedisLookupCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisLookupCache) key(name string) string {
	return lookupKeyPrefix + name
}

func (c *RedisLookupCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	return c.ttl + time.Duration(rand.Float64()*lookupTTLJitter*float64(c.ttl))
}

func (c *RedisLookupCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordLookupCache(key, false)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warnw("discarding undecodable cache entry",
			"key", key,
			"error", err,
		)
		_ = c.client.Del(ctx, c.key(key)).Err()
		metrics.RecordLookupCache(key, false)
		return false, nil
	}

	metrics.RecordLookupCache(key, true)
	return true, nil
}

func (c *RedisLookupCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	c.logger.Debugw("lookup cached",
		"key", key,
		"bytes", len(data),
	)
	return nil
}

func (c *RedisLookupCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate lookup cache: %w", err)
	}
	return nil
}

// NopLookupCache never stores anything; used when Redis is disabled.
type NopLookupCache struct{}

func (NopLookupCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopLookupCache) Set(context.Context, string, any) error         { return nil }
func (NopLookupCache) Invalidate(context.Context, ...string) error    { return nil }
