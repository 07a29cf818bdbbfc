package valueobjects

import "fmt"

type Category string

const (
	CategoryBugReport      Category = "bug_report"
	CategoryAccountIssue   Category = "account_issue"
	CategoryBillingPayment Category = "billing_payment"
	CategoryGeneralInquiry Category = "general_inquiry"
)

var validCategories = map[Category]bool{
	CategoryBugReport:      true,
	CategoryAccountIssue:   true,
	CategoryBillingPayment: true,
	CategoryGeneralInquiry: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// DefaultPriority derives the ticket priority from its category.
func (c Category) DefaultPriority() Priority {
	if c == CategoryBillingPayment {
		return PriorityHigh
	}
	return PriorityNormal
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid ticket category: %s", s)
	}
	return c, nil
}
