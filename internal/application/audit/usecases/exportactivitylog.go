package usecases

import (
	"context"
	"fmt"
	"time"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// ActivityExporter renders entries into a downloadable document.
type ActivityExporter interface {
	Render(entries []*audit.Entry) ([]byte, error)
	ContentType() string
	Extension() string
}

type ExportActivityLogCommand struct {
	Actor appaudit.Actor
	GetActivityLogQuery
}

type ExportActivityLogResult struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

type ExportActivityLogUseCase struct {
	auditRepo audit.Repository
	exporter  ActivityExporter
	recorder  appaudit.Recorder
	logger    logger.Interface
}

func NewExportActivityLogUseCase(
	auditRepo audit.Repository,
	exporter ActivityExporter,
	recorder appaudit.Recorder,
	logger logger.Interface,
) *ExportActivityLogUseCase {
	return &ExportActivityLogUseCase{
		auditRepo: auditRepo,
		exporter:  exporter,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *ExportActivityLogUseCase) Execute(ctx context.Context, cmd ExportActivityLogCommand) (*ExportActivityLogResult, error) {
	query := cmd.GetActivityLogQuery
	if query.Limit <= 0 {
		query.Limit = constants.MaxActivityExportRows
	}
	filter, err := buildFilter(query, constants.MaxActivityExportRows)
	if err != nil {
		return nil, err
	}

	entries, _, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list activity log for export", "error", err)
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}

	content, err := uc.exporter.Render(entries)
	if err != nil {
		uc.logger.Errorw("failed to render activity export", "error", err)
		return nil, fmt.Errorf("failed to render activity export: %w", err)
	}

	uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionActivityExport, audit.TargetActivity, "", map[string]any{
		"rows":       len(entries),
		"actionType": query.ActionType,
		"adminId":    query.AdminID,
	}))

	return &ExportActivityLogResult{
		Filename:    fmt.Sprintf("activity-%s.%s", time.Now().UTC().Format("20060102-150405"), uc.exporter.Extension()),
		ContentType: uc.exporter.ContentType(),
		Content:     content,
		Rows:        len(entries),
	}, nil
}
