package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/user/dto"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetAccountUseCase struct {
	userRepo user.Repository
	stats    StatsProvider
	logger   logger.Interface
}

func NewGetAccountUseCase(userRepo user.Repository, stats StatsProvider, logger logger.Interface) *GetAccountUseCase {
	return &GetAccountUseCase{
		userRepo: userRepo,
		stats:    stats,
		logger:   logger,
	}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, userID string) (*dto.AccountDTO, error) {
	u, err := LoadUser(ctx, uc.userRepo, userID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "user_id", userID, "error", err)
		return nil, err
	}

	stats, err := uc.stats.StatsFor(ctx, u)
	if err != nil {
		return nil, err
	}
	return &dto.AccountDTO{User: dto.ToUserDTO(u), Usage: stats}, nil
}

// LoadUser fetches a user and maps a missing row to a not-found error.
func LoadUser(ctx context.Context, repo user.Repository, userID string) (*user.User, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user ID is required")
	}
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}
