package usage

import "context"

// IncrementOptions parameterizes one approved story creation.
type IncrementOptions struct {
	// Day is the current business day key (YYYY-MM-DD).
	Day string
	// CountTrial also advances the lifetime trial counter.
	CountTrial bool
	// TrialCap marks the trial completed once the lifetime counter reaches it.
	TrialCap int
}

// Ledger persists usage counters. Counters only change through
// IncrementStoryCount and ResetDailyCounters.
type Ledger interface {
	// GetUsage returns the stored counters or an EmptyRecord; it never creates a row.
	GetUsage(ctx context.Context, userID string) (*Record, error)
	// IncrementStoryCount performs an atomic read-modify-write at the storage layer.
	IncrementStoryCount(ctx context.Context, userID string, opts IncrementOptions) (*Record, error)
	// ResetDailyCounters zeroes daily counters not already belonging to day.
	ResetDailyCounters(ctx context.Context, day string) (int64, error)
}
