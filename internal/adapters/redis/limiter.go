// Package redis
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return redis.NewClient(opts), nil
}

// LoginLimiter counts login attempts per account in a fixed window.
type LoginLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewLoginLimiter(r *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:  r,
		limit:  limit,
		window: window,
	}
}

func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := "login_attempts:" + key

	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("limiter incr failed: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("limiter expire failed: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, "login_attempts:"+key).Err(); err != nil {
		return fmt.Errorf("limiter del failed: %w", err)
	}

	return nil
}
