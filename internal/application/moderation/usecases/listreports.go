package usecases

import (
	"context"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/moderation/dto"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/mapper"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type ListReportsQuery struct {
	Status   string
	StoryID  string
	Page     int
	PageSize int
}

type ListReportsResult struct {
	Reports  []*dto.ReportDTO
	Total    int64
	Page     int
	PageSize int
}

type ListReportsUseCase struct {
	reportRepo moderation.Repository
	logger     logger.Interface
}

func NewListReportsUseCase(reportRepo moderation.Repository, logger logger.Interface) *ListReportsUseCase {
	return &ListReportsUseCase{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, q ListReportsQuery) (*ListReportsResult, error) {
	filter := moderation.ReportFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
	}
	if q.Status != "" {
		status, err := vo.NewReportStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if q.StoryID != "" {
		filter.StoryID = &q.StoryID
	}

	reports, total, err := uc.reportRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list reports", "error", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return &ListReportsResult{
		Reports:  mapper.MapSlice(reports, dto.ToReportDTO),
		Total:    total,
		Page:     filter.CurrentPage(),
		PageSize: filter.Limit(),
	}, nil
}
