package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/moderation/dto"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// ReviewReportCommand moves a report to Status. ActionTaken is required
// when Status is resolved and ignored otherwise.
type ReviewReportCommand struct {
	ReportID        string
	Actor           appaudit.Actor
	Status          string
	ActionTaken     string
	ResolutionNotes *string
}

type ReviewReportUseCase struct {
	reportRepo moderation.Repository
	storyRepo  story.Repository
	txManager  db.Runner
	recorder   appaudit.Recorder
	logger     logger.Interface
}

func NewReviewReportUseCase(
	reportRepo moderation.Repository,
	storyRepo story.Repository,
	txManager db.Runner,
	recorder appaudit.Recorder,
	logger logger.Interface,
) *ReviewReportUseCase {
	return &ReviewReportUseCase{
		reportRepo: reportRepo,
		storyRepo:  storyRepo,
		txManager:  txManager,
		recorder:   recorder,
		logger:     logger,
	}
}

func (uc *ReviewReportUseCase) Execute(ctx context.Context, cmd ReviewReportCommand) (*dto.ReportDTO, error) {
	status, action, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	report, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report == nil {
		return nil, errors.NewNotFoundError("report not found")
	}

	if !report.Status().CanTransitionTo(status) {
		return nil, errors.NewConflictError(fmt.Sprintf("report is already %s", report.Status()))
	}

	if action.MutatesStory() {
		s, err := uc.storyRepo.GetByID(ctx, report.StoryID())
		if err != nil {
			return nil, fmt.Errorf("failed to get reported story: %w", err)
		}
		if s == nil {
			return nil, errors.NewNotFoundError("reported story no longer exists")
		}
	}

	notes := trimNotes(cmd.ResolutionNotes)
	switch status {
	case vo.StatusReviewed:
		err = report.MarkReviewed(cmd.Actor.AdminID, notes)
	case vo.StatusResolved:
		err = report.Resolve(cmd.Actor.AdminID, action, notes)
	case vo.StatusDismissed:
		err = report.Dismiss(cmd.Actor.AdminID, notes)
	}
	if err != nil {
		if stderrors.Is(err, moderation.ErrInvalidTransition) {
			return nil, errors.NewConflictError(fmt.Sprintf("report is already %s", report.Status()))
		}
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.applySideEffect(txCtx, report.StoryID(), action); err != nil {
			return err
		}
		if err := uc.reportRepo.Update(txCtx, report); err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to apply report review",
			"report_id", report.ID(),
			"status", status,
			"action_taken", action,
			"error", err,
		)
		return nil, err
	}

	details := map[string]any{
		"status":          status.String(),
		"storyId":         report.StoryID(),
		"actionTaken":     nil,
		"resolutionNotes": nil,
	}
	if a := report.ActionTaken(); a != nil {
		details["actionTaken"] = a.String()
	}
	if n := report.ResolutionNotes(); n != nil {
		details["resolutionNotes"] = *n
	}
	uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionReportReview, audit.TargetReport, report.ID(), details))

	uc.logger.Infow("report reviewed",
		"report_id", report.ID(),
		"status", status,
		"action_taken", action,
		"admin_id", cmd.Actor.AdminID,
	)
	return dto.ToReportDTO(report), nil
}

func (uc *ReviewReportUseCase) applySideEffect(ctx context.Context, storyID string, action vo.ActionTaken) error {
	switch action {
	case vo.ActionStoryHidden:
		if err := uc.storyRepo.SetVisibility(ctx, storyID, story.VisibilityPrivate); err != nil {
			return fmt.Errorf("failed to hide story: %w", err)
		}
	case vo.ActionStoryDeleted:
		if err := uc.storyRepo.Delete(ctx, storyID); err != nil {
			return fmt.Errorf("failed to delete story: %w", err)
		}
	}
	return nil
}

func (uc *ReviewReportUseCase) validateCommand(cmd ReviewReportCommand) (vo.ReportStatus, vo.ActionTaken, error) {
	if cmd.Actor.AdminID == "" {
		return "", "", errors.NewUnauthorizedError("admin session required")
	}

	status, err := vo.NewReportStatus(cmd.Status)
	if err != nil {
		return "", "", errors.NewValidationError(err.Error())
	}
	if status == vo.StatusPending {
		return "", "", errors.NewValidationError("a report cannot be moved back to pending")
	}

	if status != vo.StatusResolved {
		return status, "", nil
	}
	if cmd.ActionTaken == "" {
		return "", "", errors.NewValidationError("actionTaken is required to resolve a report")
	}
	action, err := vo.NewActionTaken(cmd.ActionTaken)
	if err != nil {
		return "", "", errors.NewValidationError(err.Error())
	}
	return status, action, nil
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
