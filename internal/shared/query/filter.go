package query

import "github.com/lumastory/lumastory/internal/shared/constants"

// PageFilter is the page/page-size window shared by list repositories.
type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return constants.DefaultPageSize
	}
	if f.PageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return f.PageSize
}

// CurrentPage is the 1-based page the filter selects.
func (f PageFilter) CurrentPage() int {
	if f.Page <= 0 {
		return 1
	}
	return f.Page
}
