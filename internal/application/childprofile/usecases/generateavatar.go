package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/lumastory/lumastory/internal/application/childprofile/dto"
	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GenerateAvatarCommand struct {
	ProfileID string
	UserID    string
}

type GenerateAvatarResult struct {
	Denied  *usagedto.DecisionDTO
	Profile *dto.ChildProfileDTO
}

type GenerateAvatarUseCase struct {
	profileRepo childprofile.Repository
	limits      LimitChecker
	generator   AvatarGenerator
	store       AvatarStore
	logger      logger.Interface
}

func NewGenerateAvatarUseCase(
	profileRepo childprofile.Repository,
	limits LimitChecker,
	generator AvatarGenerator,
	store AvatarStore,
	logger logger.Interface,
) *GenerateAvatarUseCase {
	return &GenerateAvatarUseCase{
		profileRepo: profileRepo,
		limits:      limits,
		generator:   generator,
		store:       store,
		logger:      logger,
	}
}

func (uc *GenerateAvatarUseCase) Execute(ctx context.Context, cmd GenerateAvatarCommand) (*GenerateAvatarResult, error) {
	profile, err := loadOwnedProfile(ctx, uc.profileRepo, cmd.ProfileID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	decision, err := uc.limits.CanPerform(ctx, cmd.UserID, usage.ActionGenerateImage)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return &GenerateAvatarResult{Denied: usagedto.ToDecisionDTO(usage.ActionGenerateImage, decision)}, nil
	}

	req := AvatarRequest{Name: profile.Name()}
	if a := profile.Appearance(); a != nil {
		req.Appearance = *a
	}
	if b := profile.BirthDate(); b != nil {
		now := time.Now().UTC()
		req.AgeYears = now.Year() - b.Year()
		if now.YearDay() < b.YearDay() {
			req.AgeYears--
		}
	}

	sourceURL, err := uc.generator.GenerateAvatar(ctx, req)
	if err != nil {
		uc.logger.Errorw("avatar generation failed", "profile_id", profile.ID(), "error", err)
		return nil, errors.NewBadGatewayError("avatar generation failed, please try again")
	}

	avatarURL := uc.store.Store(ctx, profile.ID(), sourceURL)
	if err := profile.SetAvatar(avatarURL); err != nil {
		return nil, errors.NewBadGatewayError("avatar generation returned no image")
	}
	if err := uc.profileRepo.UpdateAvatar(ctx, profile); err != nil {
		uc.logger.Errorw("failed to save avatar", "profile_id", profile.ID(), "error", err)
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	uc.logger.Infow("avatar generated",
		"profile_id", profile.ID(),
		"stored", avatarURL != sourceURL,
	)
	return &GenerateAvatarResult{Profile: dto.ToChildProfileDTO(profile)}, nil
}
