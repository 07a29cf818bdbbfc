package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumastory/lumastory/internal/application/user/dto"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// SyncUserCommand carries the identity asserted by the auth provider. UserID
// comes from the verified token, never from the request body.
type SyncUserCommand struct {
	UserID      string
	Email       string
	DisplayName string
}

type SyncUserResult struct {
	User    *dto.UserDTO
	Created bool
}

type SyncUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSyncUserUseCase(userRepo user.Repository, logger logger.Interface) *SyncUserUseCase {
	return &SyncUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute provisions the account on first sight. Later calls only refresh the
// display name; tier and role are managed elsewhere.
func (uc *SyncUserUseCase) Execute(ctx context.Context, cmd SyncUserCommand) (*SyncUserResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing user identity")
	}

	existing, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if existing != nil {
		if existing.Rename(cmd.DisplayName) {
			if err := uc.userRepo.Update(ctx, existing); err != nil {
				uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		return &SyncUserResult{User: dto.ToUserDTO(existing)}, nil
	}

	displayName := strings.TrimSpace(cmd.DisplayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(strings.TrimSpace(cmd.Email), "@")
	}
	u, err := user.NewUser(cmd.UserID, cmd.Email, displayName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user provisioned", "user_id", u.ID(), "tier", u.Tier())
	return &SyncUserResult{User: dto.ToUserDTO(u), Created: true}, nil
}
