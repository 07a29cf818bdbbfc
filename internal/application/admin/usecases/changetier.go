package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
	userusecases "github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type ChangeTierCommand struct {
	UserID string
	Tier   string
	Actor  appaudit.Actor
}

// ChangeTierUseCase moves a user between subscription tiers. Usage counters
// are left untouched, so an exhausted trial stays exhausted on downgrade.
type ChangeTierUseCase struct {
	userRepo user.Repository
	recorder appaudit.Recorder
	logger   logger.Interface
}

func NewChangeTierUseCase(userRepo user.Repository, recorder appaudit.Recorder, logger logger.Interface) *ChangeTierUseCase {
	return &ChangeTierUseCase{
		userRepo: userRepo,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *ChangeTierUseCase) Execute(ctx context.Context, cmd ChangeTierCommand) (*userdto.UserDTO, error) {
	tier, err := vo.NewTier(cmd.Tier)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	u, err := userusecases.LoadUser(ctx, uc.userRepo, cmd.UserID)
	if err != nil {
		return nil, err
	}

	previous, err := u.ChangeTier(tier)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user tier", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user tier: %w", err)
	}

	uc.logger.Infow("user tier changed by admin",
		"user_id", u.ID(),
		"from", previous,
		"to", tier,
		"admin_id", cmd.Actor.AdminID,
	)
	uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionUserTierChange, audit.TargetUser, u.ID(), map[string]any{
		"from": previous.String(),
		"to":   tier.String(),
	}))

	return userdto.ToUserDTO(u), nil
}
