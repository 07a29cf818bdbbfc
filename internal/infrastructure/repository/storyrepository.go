package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type StoryRepository struct {
	db     *gorm.DB
	mapper mappers.StoryMapper
	logger logger.Interface
}

func NewStoryRepository(db *gorm.DB, logger logger.Interface) *StoryRepository {
	return &StoryRepository{
		db:     db,
		mapper: mappers.NewStoryMapper(),
		logger: logger,
	}
}

func (r *StoryRepository) Create(ctx context.Context, s *story.Story) error {
	model := r.mapper.ToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create story", "id", s.ID(), "user_id", s.UserID(), "error", err)
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id string) (*story.Story, error) {
	var model models.StoryModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByUser returns one page of a user's stories, newest first, with the total count.
func (r *StoryRepository) ListByUser(ctx context.Context, userID string, page query.PageFilter) ([]*story.Story, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.StoryModel{}).Where("user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stories: %w", err)
	}

	var rows []models.StoryModel
	if err := tx.Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list stories", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]*story.Story, 0, len(rows))
	for i := range rows {
		stories = append(stories, r.mapper.ToDomain(&rows[i]))
	}
	return stories, total, nil
}

func (r *StoryRepository) SetVisibility(ctx context.Context, id string, visibility story.Visibility) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoryModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"visibility": visibility.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to set story visibility", "id", id, "error", result.Error)
		return fmt.Errorf("failed to set story visibility: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("story not found")
	}
	return nil
}

func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.StoryModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete story", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete story: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("story not found")
	}
	return nil
}

func (r *StoryRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoryModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return count, nil
}
