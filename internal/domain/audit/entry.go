package audit

import (
	"fmt"
	"time"
)

// ActionType names an administrative action recorded in the activity log.
type ActionType string

const (
	ActionUserView       ActionType = "user_view"
	ActionUserTierChange ActionType = "user_tier_change"
	ActionUserRoleChange ActionType = "user_role_change"
	ActionReportView     ActionType = "report_view"
	ActionReportReview   ActionType = "report_review"
	ActionTicketView     ActionType = "ticket_view"
	ActionTicketUpdate   ActionType = "ticket_update"
	ActionActivityExport ActionType = "activity_export"
	ActionAnalyticsView  ActionType = "analytics_view"
	ActionUsageReset     ActionType = "usage_reset"
)

var validActionTypes = map[ActionType]bool{
	ActionUserView:       true,
	ActionUserTierChange: true,
	ActionUserRoleChange: true,
	ActionReportView:     true,
	ActionReportReview:   true,
	ActionTicketView:     true,
	ActionTicketUpdate:   true,
	ActionActivityExport: true,
	ActionAnalyticsView:  true,
	ActionUsageReset:     true,
}

func (a ActionType) String() string {
	return string(a)
}

func (a ActionType) IsValid() bool {
	return validActionTypes[a]
}

func NewActionType(s string) (ActionType, error) {
	a := ActionType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return a, nil
}

// TargetType identifies the kind of resource an action touched.
type TargetType string

const (
	TargetUser     TargetType = "user"
	TargetReport   TargetType = "report"
	TargetTicket   TargetType = "ticket"
	TargetActivity TargetType = "activity"
	TargetSystem   TargetType = "system"
)

// Entry is an append-only record of one admin action.
type Entry struct {
	id         string
	adminID    string
	actionType ActionType
	targetID   *string
	targetType *TargetType
	details    map[string]any
	ipAddress  *string
	userAgent  *string
	createdAt  time.Time
}

// EntryParams carries the caller-provided parts of an entry.
type EntryParams struct {
	AdminID    string
	ActionType ActionType
	TargetID   string
	TargetType TargetType
	Details    map[string]any
	IPAddress  string
	UserAgent  string
}

func NewEntry(id string, p EntryParams) (*Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("entry ID is required")
	}
	if p.AdminID == "" {
		return nil, fmt.Errorf("admin ID is required")
	}
	if !p.ActionType.IsValid() {
		return nil, fmt.Errorf("invalid action type: %s", p.ActionType)
	}

	e := &Entry{
		id:         id,
		adminID:    p.AdminID,
		actionType: p.ActionType,
		details:    p.Details,
		ipAddress:  optional(p.IPAddress),
		userAgent:  optional(p.UserAgent),
		createdAt:  time.Now().UTC(),
	}
	if p.TargetID != "" {
		e.targetID = &p.TargetID
	}
	if p.TargetType != "" {
		tt := p.TargetType
		e.targetType = &tt
	}
	if e.details == nil {
		e.details = map[string]any{}
	}
	return e, nil
}

func ReconstructEntry(
	id, adminID string,
	actionType ActionType,
	targetID *string,
	targetType *TargetType,
	details map[string]any,
	ipAddress, userAgent *string,
	createdAt time.Time,
) *Entry {
	if details == nil {
		details = map[string]any{}
	}
	return &Entry{
		id:         id,
		adminID:    adminID,
		actionType: actionType,
		targetID:   targetID,
		targetType: targetType,
		details:    details,
		ipAddress:  ipAddress,
		userAgent:  userAgent,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() string              { return e.id }
func (e *Entry) AdminID() string         { return e.adminID }
func (e *Entry) ActionType() ActionType  { return e.actionType }
func (e *Entry) TargetID() *string       { return e.targetID }
func (e *Entry) TargetType() *TargetType { return e.targetType }
func (e *Entry) Details() map[string]any { return e.details }
func (e *Entry) IPAddress() *string      { return e.ipAddress }
func (e *Entry) UserAgent() *string      { return e.userAgent }
func (e *Entry) CreatedAt() time.Time    { return e.createdAt }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
