package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/moderation/dto"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetReportQuery struct {
	ReportID string
	Actor    appaudit.Actor
}

type GetReportUseCase struct {
	reportRepo moderation.Repository
	storyRepo  story.Repository
	recorder   appaudit.Recorder
	logger     logger.Interface
}

func NewGetReportUseCase(
	reportRepo moderation.Repository,
	storyRepo story.Repository,
	recorder appaudit.Recorder,
	logger logger.Interface,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo: reportRepo,
		storyRepo:  storyRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, query GetReportQuery) (*dto.ReportDetailDTO, error) {
	report, err := uc.reportRepo.GetByID(ctx, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", query.ReportID, "error", err)
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report == nil {
		return nil, errors.NewNotFoundError("report not found")
	}

	out := &dto.ReportDetailDTO{ReportDTO: dto.ToReportDTO(report)}
	s, err := uc.storyRepo.GetByID(ctx, report.StoryID())
	if err != nil {
		return nil, fmt.Errorf("failed to get reported story: %w", err)
	}
	if s != nil {
		out.Story = &dto.StorySummaryDTO{
			ID:         s.ID(),
			UserID:     s.UserID(),
			Title:      s.Title(),
			Content:    s.Content(),
			Visibility: s.Visibility().String(),
		}
	}

	uc.recorder.LogActivity(ctx, query.Actor.Activity(audit.ActionReportView, audit.TargetReport, report.ID(), map[string]any{
		"storyId": report.StoryID(),
		"status":  report.Status().String(),
	}))
	return out, nil
}
