package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumastory/lumastory/internal/application/childprofile/dto"
	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type CreateChildProfileCommand struct {
	UserID     string
	Name       string
	Nickname   *string
	BirthDate  *string
	Appearance *string
}

type CreateChildProfileResult struct {
	Denied  *usagedto.DecisionDTO
	Profile *dto.ChildProfileDTO
}

type CreateChildProfileUseCase struct {
	profileRepo childprofile.Repository
	limits      LimitChecker
	logger      logger.Interface
}

func NewCreateChildProfileUseCase(
	profileRepo childprofile.Repository,
	limits LimitChecker,
	logger logger.Interface,
) *CreateChildProfileUseCase {
	return &CreateChildProfileUseCase{
		profileRepo: profileRepo,
		limits:      limits,
		logger:      logger,
	}
}

func (uc *CreateChildProfileUseCase) Execute(ctx context.Context, cmd CreateChildProfileCommand) (*CreateChildProfileResult, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, errors.NewValidationError("name is required")
	}
	birthDate, err := parseBirthDate(cmd.BirthDate)
	if err != nil {
		return nil, err
	}

	decision, err := uc.limits.CanPerform(ctx, cmd.UserID, usage.ActionCreateChildProfile)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return &CreateChildProfileResult{Denied: usagedto.ToDecisionDTO(usage.ActionCreateChildProfile, decision)}, nil
	}

	exists, err := uc.profileRepo.ExistsByNameKey(ctx, cmd.UserID, childprofile.NameKey(name))
	if err != nil {
		uc.logger.Errorw("failed to check child profile name", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to check child profile name: %w", err)
	}
	if exists {
		return nil, errors.NewValidationError("a child profile with this name already exists")
	}

	profile, err := childprofile.NewChildProfile(uuid.NewString(), cmd.UserID, name, cmd.Nickname, birthDate, cmd.Appearance)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	created, err := uc.profileRepo.CreateWithinLimit(ctx, profile, decision.MaxCount)
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError("a child profile with this name already exists")
		}
		uc.logger.Errorw("failed to create child profile", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to create child profile: %w", err)
	}
	if !created {
		// a concurrent create took the last slot after the limit check
		return uc.deniedAfterRace(ctx, cmd.UserID)
	}

	uc.logger.Infow("child profile created", "profile_id", profile.ID(), "user_id", cmd.UserID)
	return &CreateChildProfileResult{Profile: dto.ToChildProfileDTO(profile)}, nil
}

func (uc *CreateChildProfileUseCase) deniedAfterRace(ctx context.Context, userID string) (*CreateChildProfileResult, error) {
	decision, err := uc.limits.CanPerform(ctx, userID, usage.ActionCreateChildProfile)
	if err != nil {
		return nil, err
	}
	if decision.Allowed {
		return nil, errors.NewConflictError("child profile limit changed, please retry")
	}
	uc.logger.Infow("child profile denied at insert", "user_id", userID, "max_count", decision.MaxCount)
	return &CreateChildProfileResult{Denied: usagedto.ToDecisionDTO(usage.ActionCreateChildProfile, decision)}, nil
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, errors.NewValidationError("birthDate must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}
