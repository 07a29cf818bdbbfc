package moderation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
)

const maxDescriptionLength = 1000

// ErrInvalidTransition is returned when a report cannot move to the requested status.
var ErrInvalidTransition = errors.New("invalid report status transition")

// Report is a user complaint about a story.
type Report struct {
	id              string
	reporterID      string
	storyID         string
	reason          vo.ReportReason
	description     string
	status          vo.ReportStatus
	actionTaken     *vo.ActionTaken
	reviewerID      *string
	reviewedAt      *time.Time
	resolutionNotes *string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewReport(id, reporterID, storyID string, reason vo.ReportReason, description string) (*Report, error) {
	if id == "" || reporterID == "" || storyID == "" {
		return nil, fmt.Errorf("report ID, reporter and story are required")
	}
	if !reason.IsValid() {
		return nil, fmt.Errorf("invalid report reason: %s", reason)
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}

	now := time.Now().UTC()
	return &Report{
		id:          id,
		reporterID:  reporterID,
		storyID:     storyID,
		reason:      reason,
		description: description,
		status:      vo.StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructReport rebuilds a report from persistence.
func ReconstructReport(
	id, reporterID, storyID string,
	reason vo.ReportReason,
	description string,
	status vo.ReportStatus,
	actionTaken *vo.ActionTaken,
	reviewerID *string,
	reviewedAt *time.Time,
	resolutionNotes *string,
	createdAt, updatedAt time.Time,
) (*Report, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid report status %q for report %s", status, id)
	}
	return &Report{
		id:              id,
		reporterID:      reporterID,
		storyID:         storyID,
		reason:          reason,
		description:     description,
		status:          status,
		actionTaken:     actionTaken,
		reviewerID:      reviewerID,
		reviewedAt:      reviewedAt,
		resolutionNotes: resolutionNotes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (r *Report) ID() string                   { return r.id }
func (r *Report) ReporterID() string           { return r.reporterID }
func (r *Report) StoryID() string              { return r.storyID }
func (r *Report) Reason() vo.ReportReason      { return r.reason }
func (r *Report) Description() string          { return r.description }
func (r *Report) Status() vo.ReportStatus      { return r.status }
func (r *Report) ActionTaken() *vo.ActionTaken { return r.actionTaken }
func (r *Report) ReviewerID() *string          { return r.reviewerID }
func (r *Report) ReviewedAt() *time.Time       { return r.reviewedAt }
func (r *Report) ResolutionNotes() *string     { return r.resolutionNotes }
func (r *Report) CreatedAt() time.Time         { return r.createdAt }
func (r *Report) UpdatedAt() time.Time         { return r.updatedAt }

// MarkReviewed records an intermediate review checkpoint.
func (r *Report) MarkReviewed(reviewerID string, notes *string) error {
	return r.transition(vo.StatusReviewed, reviewerID, nil, notes)
}

// Resolve closes the report with a moderation action.
func (r *Report) Resolve(reviewerID string, action vo.ActionTaken, notes *string) error {
	if !action.IsValid() {
		return fmt.Errorf("invalid action taken: %s", action)
	}
	return r.transition(vo.StatusResolved, reviewerID, &action, notes)
}

// Dismiss closes the report without action.
func (r *Report) Dismiss(reviewerID string, notes *string) error {
	return r.transition(vo.StatusDismissed, reviewerID, nil, notes)
}

func (r *Report) transition(next vo.ReportStatus, reviewerID string, action *vo.ActionTaken, notes *string) error {
	if reviewerID == "" {
		return fmt.Errorf("reviewer is required")
	}
	if !r.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.status, next)
	}

	now := time.Now().UTC()
	r.status = next
	r.reviewerID = &reviewerID
	r.reviewedAt = &now
	if action != nil {
		r.actionTaken = action
	}
	if notes != nil {
		r.resolutionNotes = notes
	}
	r.updatedAt = now
	return nil
}
