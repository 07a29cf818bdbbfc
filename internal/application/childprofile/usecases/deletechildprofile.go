package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type DeleteChildProfileCommand struct {
	ProfileID string
	UserID    string
}

type DeleteChildProfileUseCase struct {
	profileRepo childprofile.Repository
	logger      logger.Interface
}

func NewDeleteChildProfileUseCase(profileRepo childprofile.Repository, logger logger.Interface) *DeleteChildProfileUseCase {
	return &DeleteChildProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (uc *DeleteChildProfileUseCase) Execute(ctx context.Context, cmd DeleteChildProfileCommand) error {
	profile, err := loadOwnedProfile(ctx, uc.profileRepo, cmd.ProfileID, cmd.UserID)
	if err != nil {
		return err
	}

	if err := uc.profileRepo.Delete(ctx, profile.ID()); err != nil {
		uc.logger.Errorw("failed to delete child profile", "profile_id", profile.ID(), "error", err)
		return fmt.Errorf("failed to delete child profile: %w", err)
	}

	uc.logger.Infow("child profile deleted", "profile_id", profile.ID(), "user_id", cmd.UserID)
	return nil
}

func loadOwnedProfile(ctx context.Context, repo childprofile.Repository, profileID, userID string) (*childprofile.ChildProfile, error) {
	profile, err := repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child profile: %w", err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("child profile not found")
	}
	if !profile.IsOwnedBy(userID) {
		return nil, errors.NewForbiddenError("child profile belongs to another user")
	}
	return profile, nil
}
