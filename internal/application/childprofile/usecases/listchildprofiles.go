package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/childprofile/dto"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/mapper"
)

type ListChildProfilesUseCase struct {
	profileRepo childprofile.Repository
	logger      logger.Interface
}

func NewListChildProfilesUseCase(profileRepo childprofile.Repository, logger logger.Interface) *ListChildProfilesUseCase {
	return &ListChildProfilesUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (uc *ListChildProfilesUseCase) Execute(ctx context.Context, userID string) ([]*dto.ChildProfileDTO, error) {
	profiles, err := uc.profileRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list child profiles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list child profiles: %w", err)
	}
	return mapper.MapSlice(profiles, dto.ToChildProfileDTO), nil
}
