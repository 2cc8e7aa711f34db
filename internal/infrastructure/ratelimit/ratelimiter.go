package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig bounds the number of requests one client may make per window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int64
	ResetIn   time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Reset(ctx context.Context, key string) error
}
