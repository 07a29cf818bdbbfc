package audit

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// Recorder is the write side of the admin activity trail.
type Recorder interface {
	LogActivity(ctx context.Context, activity audit.EntryParams)
}

// Actor identifies the admin performing a request.
type Actor struct {
	AdminID   string
	IPAddress string
	UserAgent string
}

// Activity builds the entry parameters for an action by this actor.
func (a Actor) Activity(action audit.ActionType, targetType audit.TargetType, targetID string, details map[string]any) audit.EntryParams {
	return audit.EntryParams{
		AdminID:    a.AdminID,
		ActionType: action,
		TargetID:   targetID,
		TargetType: targetType,
		Details:    details,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
	}
}

// ActivityLogger appends audit entries. A failed write is logged and counted
// but never reaches the caller.
type ActivityLogger struct {
	repo     audit.Repository
	logger   logger.Interface
	failures atomic.Int64
}

func NewActivityLogger(repo audit.Repository, logger logger.Interface) *ActivityLogger {
	return &ActivityLogger{
		repo:   repo,
		logger: logger,
	}
}

func (l *ActivityLogger) LogActivity(ctx context.Context, activity audit.EntryParams) {
	entry, err := audit.NewEntry(uuid.NewString(), activity)
	if err != nil {
		l.failures.Add(1)
		l.logger.Errorw("invalid audit entry",
			"admin_id", activity.AdminID,
			"action_type", activity.ActionType,
			"error", err,
		)
		return
	}

	if err := l.repo.Append(ctx, entry); err != nil {
		l.failures.Add(1)
		l.logger.Errorw("failed to write audit entry",
			"admin_id", activity.AdminID,
			"action_type", activity.ActionType,
			"target_id", activity.TargetID,
			"error", err,
		)
	}
}

// Failures returns the number of audit writes lost since start.
func (l *ActivityLogger) Failures() int64 {
	return l.failures.Load()
}
