package repository

import (
	"context"
	"fmt"
	"time"

	redisapp "psytech/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter. The window key is created with
// its TTL in the same transaction that increments it, so a counter can never
// outlive its window.
type RedisRateLimiter struct {
	Client *redisapp.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redisapp.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{Client: client, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	const op = "repository.rate_limit_repository.Allow"

	k := rateLimitKey(key)

	var incr *redis.IntCmd
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, r.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return incr.Val() <= int64(r.limit), nil
}

func rateLimitKey(key string) string {
	return "rate_limit:" + key
}
