package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/mapper"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type ListStoriesQuery struct {
	UserID   string
	Page     int
	PageSize int
}

type ListStoriesResult struct {
	Stories  []*dto.StoryListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListStoriesUseCase struct {
	storyRepo story.Repository
	logger    logger.Interface
}

func NewListStoriesUseCase(storyRepo story.Repository, logger logger.Interface) *ListStoriesUseCase {
	return &ListStoriesUseCase{
		storyRepo: storyRepo,
		logger:    logger,
	}
}

func (uc *ListStoriesUseCase) Execute(ctx context.Context, q ListStoriesQuery) (*ListStoriesResult, error) {
	page := query.PageFilter{Page: q.Page, PageSize: q.PageSize}
	stories, total, err := uc.storyRepo.ListByUser(ctx, q.UserID, page)
	if err != nil {
		uc.logger.Errorw("failed to list stories", "user_id", q.UserID, "error", err)
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	return &ListStoriesResult{
		Stories:  mapper.MapSlice(stories, dto.ToStoryListItemDTO),
		Total:    total,
		Page:     page.CurrentPage(),
		PageSize: page.Limit(),
	}, nil
}
