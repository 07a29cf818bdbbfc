package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumastory/lumastory/internal/application/admin/dto"
	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	modvo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/domain/support"
	supportvo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// GetAnalyticsOverviewUseCase gathers the admin dashboard counters.
type GetAnalyticsOverviewUseCase struct {
	userRepo   user.Repository
	storyRepo  story.Repository
	reportRepo moderation.Repository
	ticketRepo support.Repository
	auditRepo  audit.Repository
	failures   FailureCounter
	recorder   appaudit.Recorder
	logger     logger.Interface
}

func NewGetAnalyticsOverviewUseCase(
	userRepo user.Repository,
	storyRepo story.Repository,
	reportRepo moderation.Repository,
	ticketRepo support.Repository,
	auditRepo audit.Repository,
	failures FailureCounter,
	recorder appaudit.Recorder,
	log logger.Interface,
) *GetAnalyticsOverviewUseCase {
	return &GetAnalyticsOverviewUseCase{
		userRepo:   userRepo,
		storyRepo:  storyRepo,
		reportRepo: reportRepo,
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		failures:   failures,
		recorder:   recorder,
		logger:     log,
	}
}

// Execute runs every aggregate concurrently; the first failure cancels the rest.
func (uc *GetAnalyticsOverviewUseCase) Execute(ctx context.Context, actor appaudit.Actor) (*dto.AnalyticsOverviewDTO, error) {
	uc.logger.Debugw("fetching analytics overview")

	now := biztime.NowUTC()
	todayStart := biztime.StartOfDayUTC(now)
	activitySince := now.Add(-24 * time.Hour)

	var (
		byTier         map[string]int64
		totalUsers     int64
		storiesToday   int64
		pendingReports int64
		openTickets    int64
		activity24h    int64
	)

	g, gctx := errgroup.WithContext(ctx)

	// Users: total and per tier
	g.Go(func() error {
		counts, err := uc.userRepo.CountByTier(gctx)
		if err != nil {
			uc.logger.Errorw("failed to count users by tier", "error", err)
			return errors.NewInternalError("failed to count users")
		}
		byTier = make(map[string]int64, len(counts))
		for tier, n := range counts {
			byTier[tier.String()] = n
			totalUsers += n
		}
		return nil
	})

	// Stories created since the start of the business day
	g.Go(func() error {
		count, err := uc.storyRepo.CountCreatedSince(gctx, todayStart)
		if err != nil {
			uc.logger.Errorw("failed to count stories", "error", err)
			return errors.NewInternalError("failed to count stories created today")
		}
		storiesToday = count
		return nil
	})

	// Reports: pending
	g.Go(func() error {
		count, err := uc.reportRepo.CountByStatus(gctx, modvo.StatusPending)
		if err != nil {
			uc.logger.Errorw("failed to count pending reports", "error", err)
			return errors.NewInternalError("failed to count pending reports")
		}
		pendingReports = count
		return nil
	})

	// Tickets: open or being worked on
	g.Go(func() error {
		count, err := uc.ticketRepo.CountByStatus(gctx, supportvo.StatusOpen, supportvo.StatusInProgress)
		if err != nil {
			uc.logger.Errorw("failed to count open tickets", "error", err)
			return errors.NewInternalError("failed to count open tickets")
		}
		openTickets = count
		return nil
	})

	// Admin activity in the last 24 hours
	g.Go(func() error {
		_, total, err := uc.auditRepo.List(gctx, audit.Filter{Since: &activitySince, Limit: 1})
		if err != nil {
			uc.logger.Errorw("failed to count admin activity", "error", err)
			return errors.NewInternalError("failed to count admin activity")
		}
		activity24h = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc.recorder.LogActivity(ctx, actor.Activity(audit.ActionAnalyticsView, audit.TargetSystem, "", nil))

	return &dto.AnalyticsOverviewDTO{
		Users: dto.UsersSection{
			Total:  totalUsers,
			ByTier: byTier,
		},
		StoriesToday:       storiesToday,
		PendingReports:     pendingReports,
		OpenTickets:        openTickets,
		AdminActivity24h:   activity24h,
		AuditWriteFailures: uc.failures.Failures(),
		GeneratedAt:        now,
	}, nil
}
