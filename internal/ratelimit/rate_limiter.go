// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter allows at most Limit requests per key in each Window.
type Limiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
}

// NewLimiter returns a limiter. A nil client or non-positive limit allows
// everything.
func NewLimiter(rdb redis.Cmdable, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Enabled reports whether requests are actually counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rdb != nil && l.limit > 0
}

// Allow counts one request for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}

	k := windowKey(key, l.window, time.Now())
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	// Set expiration if first time
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}

// windowKey buckets key by the window that contains now.
func windowKey(key string, window time.Duration, now time.Time) string {
	return fmt.Sprintf("rate:%s:%d", key, now.UnixNano()/int64(window))
}
