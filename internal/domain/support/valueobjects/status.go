package valueobjects

import (
	"fmt"
	"strings"
)

// TicketStatus tracks a support request through the admin queue. Any status
// may follow any other.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) String() string { return string(s) }

func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// StampsResolution reports whether entering s records the resolution time.
func (s TicketStatus) StampsResolution() bool {
	return s == StatusResolved
}

// NewTicketStatus parses an admin-supplied status, ignoring case and padding.
func NewTicketStatus(raw string) (TicketStatus, error) {
	s := TicketStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %q", raw)
	}
	return s, nil
}
