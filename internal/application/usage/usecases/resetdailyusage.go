package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// ResetDailyUsageCommand triggers the daily counter reset. Actor is nil when
// the reset comes from the scheduler or the cron endpoint.
type ResetDailyUsageCommand struct {
	Actor *appaudit.Actor
}

type ResetDailyUsageResult struct {
	Day   string `json:"day"`
	Reset int64  `json:"reset"`
}

type ResetDailyUsageUseCase struct {
	ledger   usage.Ledger
	recorder appaudit.Recorder
	logger   logger.Interface
}

func NewResetDailyUsageUseCase(ledger usage.Ledger, recorder appaudit.Recorder, logger logger.Interface) *ResetDailyUsageUseCase {
	return &ResetDailyUsageUseCase{
		ledger:   ledger,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute is idempotent within a business day.
func (uc *ResetDailyUsageUseCase) Execute(ctx context.Context, cmd ResetDailyUsageCommand) (*ResetDailyUsageResult, error) {
	day := biztime.Today()

	n, err := uc.ledger.ResetDailyCounters(ctx, day)
	if err != nil {
		uc.logger.Errorw("failed to reset daily usage counters", "day", day, "error", err)
		return nil, fmt.Errorf("failed to reset daily usage counters: %w", err)
	}

	uc.logger.Infow("daily usage counters reset", "day", day, "rows", n)

	if cmd.Actor != nil {
		uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionUsageReset, audit.TargetSystem, "", map[string]any{
			"day":  day,
			"rows": n,
		}))
	}
	return &ResetDailyUsageResult{Day: day, Reset: n}, nil
}
