package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
	sharedmapper "github.com/lumastory/lumastory/internal/shared/mapper"
)

// TicketRepository implements support.Repository.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *support.Ticket) error {
	model := r.mapper.ToModel(ticket)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create support ticket", "id", ticket.ID(), "reference", ticket.Reference(), "error", err)
		return fmt.Errorf("failed to create support ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*support.Ticket, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *TicketRepository) GetByReference(ctx context.Context, reference string) (*support.Ticket, error) {
	return r.findOne(ctx, "reference = ?", reference)
}

func (r *TicketRepository) findOne(ctx context.Context, where string, arg any) (*support.Ticket, error) {
	var model models.SupportTicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where(where, arg).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// List returns tickets newest first.
func (r *TicketRepository) List(ctx context.Context, filter support.TicketFilter) ([]*support.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.SupportTicketModel{})
	if filter.Status != nil {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.Category != nil {
		tx = tx.Where("category = ?", filter.Category.String())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count support tickets: %w", err)
	}

	var rows []models.SupportTicketModel
	if err := tx.Order("created_at DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list support tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list support tickets: %w", err)
	}

	tickets, err := sharedmapper.MapRows(rows, r.mapper.ToDomain)
	if err != nil {
		r.logger.Errorw("failed to map support ticket", "error", err)
		return nil, 0, fmt.Errorf("failed to map support ticket: %w", err)
	}
	return tickets, total, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *support.Ticket) error {
	model := r.mapper.ToModel(ticket)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SupportTicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"priority":    model.Priority,
			"assignee_id": model.AssigneeID,
			"admin_notes": model.AdminNotes,
			"resolved_at": model.ResolvedAt,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update support ticket", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update support ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("support ticket not found")
	}
	return nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, statuses ...vo.TicketStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}

	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SupportTicketModel{}).
		Where("status IN ?", values).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count support tickets: %w", err)
	}
	return count, nil
}
