package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	sharedmapper "github.com/lumastory/lumastory/internal/shared/mapper"
)

// AuditRepository stores the admin activity log. Rows are never updated.
type AuditRepository struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{
		db:     db,
		mapper: mappers.NewAuditMapper(),
	}
}

func (r *AuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append activity log entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.AdminActivityLogModel{})
	if filter.AdminID != "" {
		tx = tx.Where("admin_id = ?", filter.AdminID)
	}
	if filter.ActionType != nil {
		tx = tx.Where("action_type = ?", filter.ActionType.String())
	}
	if filter.TargetID != "" {
		tx = tx.Where("target_id = ?", filter.TargetID)
	}
	if filter.TargetType != nil {
		tx = tx.Where("target_type = ?", string(*filter.TargetType))
	}
	if filter.Since != nil {
		tx = tx.Where("created_at >= ?", *filter.Since)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity log: %w", err)
	}

	tx = tx.Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var rows []models.AdminActivityLogModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity log: %w", err)
	}

	entries, err := sharedmapper.MapRows(rows, r.mapper.ToDomain)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
