package audit

import (
	"context"
	"time"
)

// Filter narrows activity log reads. Results are newest first.
type Filter struct {
	AdminID    string
	ActionType *ActionType
	TargetID   string
	TargetType *TargetType
	Since      *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}
