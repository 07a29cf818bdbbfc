package ratelimit

import (
	"context"
	"time"
)

// Rule allows Limit hits per fixed Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Result describes one Allow decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAfter is the time until the current window ends.
	ResetAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (*Result, error)
	Reset(ctx context.Context, key string, rule Rule) error
}
