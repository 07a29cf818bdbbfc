package valueobjects

import "fmt"

type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusReviewed  ReportStatus = "reviewed"
	StatusResolved  ReportStatus = "resolved"
	StatusDismissed ReportStatus = "dismissed"
)

var validReportStatuses = map[ReportStatus]bool{
	StatusPending:   true,
	StatusReviewed:  true,
	StatusResolved:  true,
	StatusDismissed: true,
}

// resolved and dismissed have no outgoing transitions.
var reportStatusTransitions = map[ReportStatus][]ReportStatus{
	StatusPending: {
		StatusReviewed,
		StatusResolved,
		StatusDismissed,
	},
	StatusReviewed: {
		StatusResolved,
		StatusDismissed,
	},
}

func (s ReportStatus) String() string {
	return string(s)
}

func (s ReportStatus) IsValid() bool {
	return validReportStatuses[s]
}

func (s ReportStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range reportStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewReportStatus(s string) (ReportStatus, error) {
	rs := ReportStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return rs, nil
}
