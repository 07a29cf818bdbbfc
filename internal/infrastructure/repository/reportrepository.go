package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/moderation"
	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
	sharedmapper "github.com/lumastory/lumastory/internal/shared/mapper"
)

type ReportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
	logger logger.Interface
}

func NewReportRepository(db *gorm.DB, logger logger.Interface) *ReportRepository {
	return &ReportRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
		logger: logger,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *moderation.Report) error {
	model := r.mapper.ToModel(report)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create story report", "id", report.ID(), "story_id", report.StoryID(), "error", err)
		return fmt.Errorf("failed to create story report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*moderation.Report, error) {
	var model models.StoryReportModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story report: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// List returns reports oldest first so the review queue is worked in order.
func (r *ReportRepository) List(ctx context.Context, filter moderation.ReportFilter) ([]*moderation.Report, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.StoryReportModel{})
	if filter.Status != nil {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.StoryID != nil {
		tx = tx.Where("story_id = ?", *filter.StoryID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count story reports: %w", err)
	}

	var rows []models.StoryReportModel
	if err := tx.Order("created_at ASC, id ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list story reports", "error", err)
		return nil, 0, fmt.Errorf("failed to list story reports: %w", err)
	}

	reports, err := sharedmapper.MapRows(rows, r.mapper.ToDomain)
	if err != nil {
		r.logger.Errorw("failed to map story report", "error", err)
		return nil, 0, fmt.Errorf("failed to map story report: %w", err)
	}
	return reports, total, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *moderation.Report) error {
	model := r.mapper.ToModel(report)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoryReportModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"action_taken":     model.ActionTaken,
			"reviewer_id":      model.ReviewerID,
			"reviewed_at":      model.ReviewedAt,
			"resolution_notes": model.ResolutionNotes,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update story report", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update story report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("story report not found")
	}
	return nil
}

func (r *ReportRepository) HasPending(ctx context.Context, reporterID, storyID string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoryReportModel{}).
		Where("reporter_id = ? AND story_id = ? AND status = ?", reporterID, storyID, vo.StatusPending.String()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check pending reports: %w", err)
	}
	return count > 0, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context, status vo.ReportStatus) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoryReportModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count story reports: %w", err)
	}
	return count, nil
}
