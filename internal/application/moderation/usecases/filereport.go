package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumastory/lumastory/internal/application/moderation/dto"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type FileReportCommand struct {
	ReporterID  string
	StoryID     string
	Reason      string
	Description string
}

type FileReportUseCase struct {
	reportRepo moderation.Repository
	storyRepo  story.Repository
	logger     logger.Interface
}

func NewFileReportUseCase(
	reportRepo moderation.Repository,
	storyRepo story.Repository,
	logger logger.Interface,
) *FileReportUseCase {
	return &FileReportUseCase{
		reportRepo: reportRepo,
		storyRepo:  storyRepo,
		logger:     logger,
	}
}

func (uc *FileReportUseCase) Execute(ctx context.Context, cmd FileReportCommand) (*dto.ReportDTO, error) {
	reason, err := vo.NewReportReason(cmd.Reason)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	s, err := uc.storyRepo.GetByID(ctx, cmd.StoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if s == nil || !s.IsVisibleTo(cmd.ReporterID) {
		return nil, errors.NewNotFoundError("story not found")
	}

	pending, err := uc.reportRepo.HasPending(ctx, cmd.ReporterID, cmd.StoryID)
	if err != nil {
		uc.logger.Errorw("failed to check pending reports", "story_id", cmd.StoryID, "error", err)
		return nil, fmt.Errorf("failed to check pending reports: %w", err)
	}
	if pending {
		return nil, errors.NewConflictError("you already have a pending report for this story")
	}

	report, err := moderation.NewReport(uuid.NewString(), cmd.ReporterID, cmd.StoryID, reason, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		uc.logger.Errorw("failed to create report", "story_id", cmd.StoryID, "error", err)
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	uc.logger.Infow("story reported",
		"report_id", report.ID(),
		"story_id", cmd.StoryID,
		"reason", reason,
	)
	return dto.ToReportDTO(report), nil
}
