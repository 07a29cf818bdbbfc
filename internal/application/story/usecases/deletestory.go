package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type DeleteStoryCommand struct {
	StoryID string
	UserID  string
}

type DeleteStoryUseCase struct {
	storyRepo story.Repository
	logger    logger.Interface
}

func NewDeleteStoryUseCase(storyRepo story.Repository, logger logger.Interface) *DeleteStoryUseCase {
	return &DeleteStoryUseCase{
		storyRepo: storyRepo,
		logger:    logger,
	}
}

func (uc *DeleteStoryUseCase) Execute(ctx context.Context, cmd DeleteStoryCommand) error {
	s, err := loadOwned(ctx, uc.storyRepo, cmd.StoryID, cmd.UserID)
	if err != nil {
		return err
	}

	if err := uc.storyRepo.Delete(ctx, s.ID()); err != nil {
		uc.logger.Errorw("failed to delete story", "story_id", s.ID(), "error", err)
		return fmt.Errorf("failed to delete story: %w", err)
	}

	uc.logger.Infow("story deleted", "story_id", s.ID(), "user_id", cmd.UserID)
	return nil
}
