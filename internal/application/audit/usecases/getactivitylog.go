package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/audit/dto"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetActivityLogQuery struct {
	AdminID    string
	ActionType string
	TargetID   string
	TargetType string
	Limit      int
	Offset     int
}

type GetActivityLogUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewGetActivityLogUseCase(auditRepo audit.Repository, logger logger.Interface) *GetActivityLogUseCase {
	return &GetActivityLogUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *GetActivityLogUseCase) Execute(ctx context.Context, query GetActivityLogQuery) (*dto.ActivityLogDTO, error) {
	filter, err := buildFilter(query, constants.MaxActivityLimit)
	if err != nil {
		return nil, err
	}

	entries, total, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list activity log", "error", err)
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}

	return dto.ToActivityLogDTO(entries, total, filter.Limit, filter.Offset), nil
}

// buildFilter validates the query and clamps paging.
func buildFilter(query GetActivityLogQuery, maxLimit int) (audit.Filter, error) {
	filter := audit.Filter{
		AdminID:  query.AdminID,
		TargetID: query.TargetID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}

	if query.ActionType != "" {
		action, err := audit.NewActionType(query.ActionType)
		if err != nil {
			return audit.Filter{}, errors.NewValidationError(err.Error())
		}
		filter.ActionType = &action
	}
	if query.TargetType != "" {
		tt := audit.TargetType(query.TargetType)
		filter.TargetType = &tt
	}

	if filter.Limit <= 0 {
		filter.Limit = constants.DefaultActivityLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}
