package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/moderation"
	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

type ReportMapper interface {
	ToModel(r *moderation.Report) *models.StoryReportModel
	ToDomain(model *models.StoryReportModel) (*moderation.Report, error)
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

func (m *ReportMapperImpl) ToModel(r *moderation.Report) *models.StoryReportModel {
	model := &models.StoryReportModel{
		ID:              r.ID(),
		ReporterID:      r.ReporterID(),
		StoryID:         r.StoryID(),
		Reason:          r.Reason().String(),
		Description:     r.Description(),
		Status:          r.Status().String(),
		ReviewerID:      r.ReviewerID(),
		ReviewedAt:      r.ReviewedAt(),
		ResolutionNotes: r.ResolutionNotes(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	if action := r.ActionTaken(); action != nil {
		s := action.String()
		model.ActionTaken = &s
	}
	return model
}

func (m *ReportMapperImpl) ToDomain(model *models.StoryReportModel) (*moderation.Report, error) {
	var action *vo.ActionTaken
	if model.ActionTaken != nil {
		a := vo.ActionTaken(*model.ActionTaken)
		action = &a
	}

	return moderation.ReconstructReport(
		model.ID,
		model.ReporterID,
		model.StoryID,
		vo.ReportReason(model.Reason),
		model.Description,
		vo.ReportStatus(model.Status),
		action,
		model.ReviewerID,
		model.ReviewedAt,
		model.ResolutionNotes,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
