package usecases

import (
	"context"

	"github.com/lumastory/lumastory/internal/application/admin/dto"
	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
	userusecases "github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetUserQuery struct {
	UserID string
	Actor  appaudit.Actor
}

// GetUserUseCase returns an account with its usage for an admin.
type GetUserUseCase struct {
	userRepo user.Repository
	stats    StatsProvider
	recorder appaudit.Recorder
	logger   logger.Interface
}

func NewGetUserUseCase(
	userRepo user.Repository,
	stats StatsProvider,
	recorder appaudit.Recorder,
	logger logger.Interface,
) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		stats:    stats,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (*dto.AdminUserDTO, error) {
	u, err := userusecases.LoadUser(ctx, uc.userRepo, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", query.UserID, "error", err)
		return nil, err
	}

	stats, err := uc.stats.StatsFor(ctx, u)
	if err != nil {
		return nil, err
	}

	uc.recorder.LogActivity(ctx, query.Actor.Activity(audit.ActionUserView, audit.TargetUser, u.ID(), nil))
	return &dto.AdminUserDTO{User: userdto.ToUserDTO(u), Usage: stats}, nil
}
