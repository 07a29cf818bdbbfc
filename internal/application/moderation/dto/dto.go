package dto

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/moderation"
)

type ReportDTO struct {
	ID              string     `json:"id"`
	ReporterID      string     `json:"reporterId"`
	StoryID         string     `json:"storyId"`
	Reason          string     `json:"reason"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	ActionTaken     *string    `json:"actionTaken,omitempty"`
	ReviewerID      *string    `json:"reviewerId,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ResolutionNotes *string    `json:"resolutionNotes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// StorySummaryDTO is attached to a report when its story still exists.
type StorySummaryDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

type ReportDetailDTO struct {
	*ReportDTO
	Story *StorySummaryDTO `json:"story"`
}

func ToReportDTO(r *moderation.Report) *ReportDTO {
	out := &ReportDTO{
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
	if a := r.ActionTaken(); a != nil {
		s := a.String()
		out.ActionTaken = &s
	}
	return out
}
