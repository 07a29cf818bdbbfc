package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type ChangeVisibilityCommand struct {
	StoryID    string
	UserID     string
	Visibility string
}

type ChangeVisibilityUseCase struct {
	storyRepo story.Repository
	logger    logger.Interface
}

func NewChangeVisibilityUseCase(storyRepo story.Repository, logger logger.Interface) *ChangeVisibilityUseCase {
	return &ChangeVisibilityUseCase{
		storyRepo: storyRepo,
		logger:    logger,
	}
}

func (uc *ChangeVisibilityUseCase) Execute(ctx context.Context, cmd ChangeVisibilityCommand) (*dto.StoryDTO, error) {
	visibility, err := story.NewVisibility(cmd.Visibility)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	s, err := loadOwned(ctx, uc.storyRepo, cmd.StoryID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if s.Visibility() != visibility {
		if err := uc.storyRepo.SetVisibility(ctx, s.ID(), visibility); err != nil {
			uc.logger.Errorw("failed to change story visibility", "story_id", s.ID(), "error", err)
			return nil, fmt.Errorf("failed to change visibility: %w", err)
		}
		uc.logger.Infow("story visibility changed", "story_id", s.ID(), "visibility", visibility)
	}

	updated, err := uc.storyRepo.GetByID(ctx, s.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload story: %w", err)
	}
	return dto.ToStoryDTO(updated), nil
}
