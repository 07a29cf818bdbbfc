package moderation

import (
	"context"

	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type ReportFilter struct {
	Status  *vo.ReportStatus
	StoryID *string
	query.PageFilter
}

// Repository persists reports. GetByID returns (nil, nil) when missing.
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*Report, int64, error)
	// Update overwrites the review fields keyed by report id.
	Update(ctx context.Context, report *Report) error
	HasPending(ctx context.Context, reporterID, storyID string) (bool, error)
	CountByStatus(ctx context.Context, status vo.ReportStatus) (int64, error)
}
