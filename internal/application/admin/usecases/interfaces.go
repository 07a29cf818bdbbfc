package usecases

import (
	"context"

	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/user"
)

// StatsProvider builds usage stats for a loaded user.
type StatsProvider interface {
	StatsFor(ctx context.Context, u *user.User) (*usagedto.UsageStatsDTO, error)
}

// FailureCounter exposes how many audit writes have been lost.
type FailureCounter interface {
	Failures() int64
}
