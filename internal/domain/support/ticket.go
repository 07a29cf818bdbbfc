package support

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
)

const (
	MinSubjectLength = 5
	MaxSubjectLength = 200
	MinMessageLength = 20
	MaxMessageLength = 2000
)

// Ticket is a help request. Requester is nil for anonymous contact-form users.
type Ticket struct {
	id          string
	reference   string
	requesterID *string
	email       string
	name        *string
	category    vo.Category
	subject     string
	message     string
	priority    vo.Priority
	status      vo.TicketStatus
	assigneeID  *string
	adminNotes  *string
	resolvedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTicket opens a ticket. Priority is derived from the category here and
// never recomputed.
func NewTicket(
	id, reference string,
	requesterID *string,
	email string,
	name *string,
	category vo.Category,
	subject, message string,
) (*Ticket, error) {
	if id == "" || reference == "" {
		return nil, fmt.Errorf("ticket ID and reference are required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}
	subject = strings.TrimSpace(subject)
	if n := utf8.RuneCountInString(subject); n < MinSubjectLength || n > MaxSubjectLength {
		return nil, fmt.Errorf("subject must be between %d and %d characters", MinSubjectLength, MaxSubjectLength)
	}
	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < MinMessageLength || n > MaxMessageLength {
		return nil, fmt.Errorf("message must be between %d and %d characters", MinMessageLength, MaxMessageLength)
	}

	now := time.Now().UTC()
	return &Ticket{
		id:          id,
		reference:   reference,
		requesterID: requesterID,
		email:       strings.ToLower(strings.TrimSpace(email)),
		name:        name,
		category:    category,
		subject:     subject,
		message:     message,
		priority:    category.DefaultPriority(),
		status:      vo.StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence.
func ReconstructTicket(
	id, reference string,
	requesterID *string,
	email string,
	name *string,
	category vo.Category,
	subject, message string,
	priority vo.Priority,
	status vo.TicketStatus,
	assigneeID, adminNotes *string,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q for ticket %s", status, id)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q for ticket %s", priority, id)
	}
	return &Ticket{
		id:          id,
		reference:   reference,
		requesterID: requesterID,
		email:       email,
		name:        name,
		category:    category,
		subject:     subject,
		message:     message,
		priority:    priority,
		status:      status,
		assigneeID:  assigneeID,
		adminNotes:  adminNotes,
		resolvedAt:  resolvedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Ticket) ID() string              { return t.id }
func (t *Ticket) Reference() string       { return t.reference }
func (t *Ticket) RequesterID() *string    { return t.requesterID }
func (t *Ticket) Email() string           { return t.email }
func (t *Ticket) Name() *string           { return t.name }
func (t *Ticket) Category() vo.Category   { return t.category }
func (t *Ticket) Subject() string         { return t.subject }
func (t *Ticket) Message() string         { return t.message }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) AssigneeID() *string     { return t.assigneeID }
func (t *Ticket) AdminNotes() *string     { return t.adminNotes }
func (t *Ticket) ResolvedAt() *time.Time  { return t.resolvedAt }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }

// ChangeStatus sets any valid status; there is no transition guard.
func (t *Ticket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	if t.status == status {
		return nil
	}

	now := time.Now().UTC()
	t.status = status
	t.updatedAt = now
	if status.StampsResolution() && t.resolvedAt == nil {
		t.resolvedAt = &now
	}
	return nil
}

// AssignTo sets the handling admin; an empty id clears the assignment.
func (t *Ticket) AssignTo(adminID string) {
	if adminID == "" {
		t.assigneeID = nil
	} else {
		t.assigneeID = &adminID
	}
	t.updatedAt = time.Now().UTC()
}

func (t *Ticket) SetAdminNotes(notes string) {
	t.adminNotes = &notes
	t.updatedAt = time.Now().UTC()
}
