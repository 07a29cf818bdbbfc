package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts hits per key in fixed windows aligned to the epoch.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, rule Rule) (*Result, error) {
	if rule.Limit <= 0 || rule.Window <= 0 {
		return &Result{Allowed: true, Limit: rule.Limit}, nil
	}

	now := l.now()
	windowStart := now.Truncate(rule.Window)
	resetAfter := windowStart.Add(rule.Window).Sub(now)
	redisKey := l.getKey(key, rule.Window, windowStart)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rule.Window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(incr.Val())
	remaining := rule.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:    count <= rule.Limit,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}, nil
}

// Reset clears the current window for key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string, rule Rule) error {
	windowStart := l.now().Truncate(rule.Window)
	if err := l.client.Del(ctx, l.getKey(key, rule.Window, windowStart)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", identifier, window.String(), windowStart.Unix())
}
