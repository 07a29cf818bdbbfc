package valueobjects

import "fmt"

type ReportReason string

const (
	ReasonInappropriateContent ReportReason = "inappropriate_content"
	ReasonOffensiveLanguage    ReportReason = "offensive_language"
	ReasonViolence             ReportReason = "violence"
	ReasonScaryContent         ReportReason = "scary_content"
	ReasonCopyright            ReportReason = "copyright"
	ReasonSpam                 ReportReason = "spam"
	ReasonOther                ReportReason = "other"
)

var validReasons = map[ReportReason]bool{
	ReasonInappropriateContent: true,
	ReasonOffensiveLanguage:    true,
	ReasonViolence:             true,
	ReasonScaryContent:         true,
	ReasonCopyright:            true,
	ReasonSpam:                 true,
	ReasonOther:                true,
}

func (r ReportReason) String() string {
	return string(r)
}

func (r ReportReason) IsValid() bool {
	return validReasons[r]
}

func NewReportReason(s string) (ReportReason, error) {
	r := ReportReason(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid report reason: %s", s)
	}
	return r, nil
}
