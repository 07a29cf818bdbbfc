package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetStoryQuery struct {
	StoryID string
	UserID  string
}

type GetStoryUseCase struct {
	storyRepo story.Repository
	logger    logger.Interface
}

func NewGetStoryUseCase(storyRepo story.Repository, logger logger.Interface) *GetStoryUseCase {
	return &GetStoryUseCase{
		storyRepo: storyRepo,
		logger:    logger,
	}
}

// Execute hides private stories of other users behind a 404.
func (uc *GetStoryUseCase) Execute(ctx context.Context, query GetStoryQuery) (*dto.StoryDTO, error) {
	s, err := uc.storyRepo.GetByID(ctx, query.StoryID)
	if err != nil {
		uc.logger.Errorw("failed to get story", "story_id", query.StoryID, "error", err)
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if s == nil || !s.IsVisibleTo(query.UserID) {
		return nil, errors.NewNotFoundError("story not found")
	}
	return dto.ToStoryDTO(s), nil
}

// loadOwned returns the story when userID owns it.
func loadOwned(ctx context.Context, repo story.Repository, storyID, userID string) (*story.Story, error) {
	s, err := repo.GetByID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if s == nil || !s.IsVisibleTo(userID) {
		return nil, errors.NewNotFoundError("story not found")
	}
	if !s.IsOwnedBy(userID) {
		return nil, errors.NewForbiddenError("only the owner can modify this story")
	}
	return s, nil
}
