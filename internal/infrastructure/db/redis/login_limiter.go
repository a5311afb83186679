package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// LoginLimiter counts login attempts per key in a fixed window.
// Key format: <key> as passed by the caller, e.g. login:<email>.
type LoginLimiter struct {
	client      redis.UniversalClient
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow records an attempt and returns domain.ErrTooManyAttempts once the
// window's budget is spent.
//
// The counter is created with its TTL and incremented in one MULTI/EXEC, so a
// counter never exists without an expiry. SET NX leaves the TTL of an open
// window untouched, which keeps the window fixed.
func (l *LoginLimiter) Allow(ctx context.Context, key string) error {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter: %w", err)
	}

	if incr.Val() > l.maxAttempts {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Reset clears the counter for key.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("login limiter: %w", err)
	}
	return nil
}
