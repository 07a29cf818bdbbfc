package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/support/dto"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/mapper"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type ListTicketsQuery struct {
	Status   string
	Category string
	Page     int
	PageSize int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo support.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo support.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter := support.TicketFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
	}
	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if q.Category != "" {
		category, err := vo.NewCategory(q.Category)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list support tickets", "error", err)
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}

	return &ListTicketsResult{
		Tickets:  mapper.MapSlice(tickets, dto.ToTicketListItemDTO),
		Total:    total,
		Page:     filter.CurrentPage(),
		PageSize: filter.Limit(),
	}, nil
}
