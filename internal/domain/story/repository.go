package story

import (
	"context"
	"time"

	"github.com/lumastory/lumastory/internal/shared/query"
)

// Repository persists stories. GetByID returns (nil, nil) when missing.
type Repository interface {
	Create(ctx context.Context, story *Story) error
	GetByID(ctx context.Context, id string) (*Story, error)
	ListByUser(ctx context.Context, userID string, page query.PageFilter) ([]*Story, int64, error)
	// SetVisibility changes only the visibility column.
	SetVisibility(ctx context.Context, id string, visibility Visibility) error
	// Delete removes the row permanently.
	Delete(ctx context.Context, id string) error
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
