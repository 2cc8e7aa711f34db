package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter shared by every instance through Redis.
// Each key gets one counter per window bucket with a TTL slightly longer than the window.
type RedisRateLimiter struct {
	client *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, config RateLimitConfig) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	window := l.config.Window
	if window < time.Second {
		window = time.Second
	}

	now := l.now()
	bucket := now.Unix() / int64(window.Seconds())
	redisKey := l.getKey(key, bucket)
	resetIn := time.Unix((bucket+1)*int64(window.Seconds()), 0).Sub(now)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := incr.Val()
	remaining := int64(l.config.Requests) - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= int64(l.config.Requests),
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("ratelimit:%s:*", key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, bucket int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", identifier, bucket)
}
