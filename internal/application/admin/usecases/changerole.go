package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
	userusecases "github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/authorization"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type ChangeRoleCommand struct {
	UserID string
	Role   string
	Actor  appaudit.Actor
}

type ChangeRoleUseCase struct {
	userRepo user.Repository
	recorder appaudit.Recorder
	logger   logger.Interface
}

func NewChangeRoleUseCase(userRepo user.Repository, recorder appaudit.Recorder, logger logger.Interface) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{
		userRepo: userRepo,
		recorder: recorder,
		logger:   logger,
	}
}

func (uc *ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (*userdto.UserDTO, error) {
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}
	// An admin demoting themselves would lock the account out of this endpoint.
	if cmd.UserID == cmd.Actor.AdminID && !role.IsSuperadmin() {
		return nil, errors.NewBadRequestError("cannot remove your own admin role")
	}

	u, err := userusecases.LoadUser(ctx, uc.userRepo, cmd.UserID)
	if err != nil {
		return nil, err
	}

	previous, err := u.ChangeRole(role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user role", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	uc.logger.Infow("user role changed by admin",
		"user_id", u.ID(),
		"from", previous,
		"to", role,
		"admin_id", cmd.Actor.AdminID,
	)
	uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionUserRoleChange, audit.TargetUser, u.ID(), map[string]any{
		"from": previous.String(),
		"to":   role.String(),
	}))

	return userdto.ToUserDTO(u), nil
}
