package usage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// LimitCheckService answers whether a user may perform a gated action and
// records approved story creations.
type LimitCheckService struct {
	userRepo user.Repository
	ledger   usage.Ledger
	policy   *usage.Policy
	logger   logger.Interface
}

func NewLimitCheckService(
	userRepo user.Repository,
	ledger usage.Ledger,
	policy *usage.Policy,
	logger logger.Interface,
) *LimitCheckService {
	return &LimitCheckService{
		userRepo: userRepo,
		ledger:   ledger,
		policy:   policy,
		logger:   logger,
	}
}

// CanPerform evaluates action for the user. A denial is a Decision with
// Allowed=false, never an error. The check has no side effects.
func (s *LimitCheckService) CanPerform(ctx context.Context, userID string, action usage.Action) (usage.Decision, error) {
	if !action.IsValid() {
		return usage.Decision{}, errors.NewValidationError(fmt.Sprintf("invalid action type: %s", action))
	}

	u, record, err := s.load(ctx, userID)
	if err != nil {
		return usage.Decision{}, err
	}

	decision, err := s.policy.Evaluate(u.Tier(), action, record)
	if err != nil {
		return usage.Decision{}, s.policyError(err, u)
	}

	if !decision.Allowed {
		s.logger.Infow("action denied by tier limits",
			"user_id", userID,
			"tier", u.Tier(),
			"action", action,
			"reason", decision.Reason,
			"current", decision.CurrentCount,
			"max", decision.MaxCount,
		)
	}
	return decision, nil
}

// IsTrialExhausted is false for users who are not on the trial tier.
func (s *LimitCheckService) IsTrialExhausted(ctx context.Context, userID string) (bool, error) {
	u, record, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	exhausted, err := s.policy.IsTrialExhausted(u.Tier(), record)
	if err != nil {
		return false, s.policyError(err, u)
	}
	return exhausted, nil
}

func (s *LimitCheckService) GetUsageStats(ctx context.Context, userID string) (*dto.UsageStatsDTO, error) {
	u, record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.statsFor(u, record)
}

// StatsFor builds usage stats for an already loaded user.
func (s *LimitCheckService) StatsFor(ctx context.Context, u *user.User) (*dto.UsageStatsDTO, error) {
	record, err := s.record(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	return s.statsFor(u, record)
}

func (s *LimitCheckService) statsFor(u *user.User, record usage.Record) (*dto.UsageStatsDTO, error) {
	limits, err := s.policy.LimitsFor(u.Tier())
	if err != nil {
		return nil, s.policyError(err, u)
	}
	remaining, err := s.policy.StoriesRemainingToday(u.Tier(), record)
	if err != nil {
		return nil, s.policyError(err, u)
	}
	return dto.ToUsageStatsDTO(u.Tier(), limits, record, remaining), nil
}

// RecordStoryCreated increments the counters after a story has been persisted.
func (s *LimitCheckService) RecordStoryCreated(ctx context.Context, u *user.User) (*usage.Record, error) {
	limits, err := s.policy.LimitsFor(u.Tier())
	if err != nil {
		return nil, s.policyError(err, u)
	}

	record, err := s.ledger.IncrementStoryCount(ctx, u.ID(), usage.IncrementOptions{
		Day:        biztime.Today(),
		CountTrial: u.Tier().IsTrial(),
		TrialCap:   limits.TrialStoryCap,
	})
	if err != nil {
		s.logger.Errorw("failed to increment story count", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to increment story count: %w", err)
	}

	if record.TrialCompleted && u.Tier().IsTrial() {
		s.logger.Infow("trial completed", "user_id", u.ID(), "trial_stories", record.TrialStoriesGenerated)
	}
	return record, nil
}

func (s *LimitCheckService) load(ctx context.Context, userID string) (*user.User, usage.Record, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load user", "user_id", userID, "error", err)
		return nil, usage.Record{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, usage.Record{}, errors.NewNotFoundError("user not found")
	}

	record, err := s.record(ctx, userID)
	if err != nil {
		return nil, usage.Record{}, err
	}
	return u, record, nil
}

func (s *LimitCheckService) record(ctx context.Context, userID string) (usage.Record, error) {
	rec, err := s.ledger.GetUsage(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load usage record", "user_id", userID, "error", err)
		return usage.Record{}, fmt.Errorf("failed to load usage: %w", err)
	}
	return rec.ForDay(biztime.Today()), nil
}

func (s *LimitCheckService) policyError(err error, u *user.User) error {
	if stderrors.Is(err, usage.ErrUnknownTier) {
		s.logger.Errorw("tier policy misconfigured", "user_id", u.ID(), "tier", u.Tier(), "error", err)
		return errors.NewInternalError("tier policy is not configured for this account")
	}
	return err
}
