package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the first item on the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ValidatePagination validates and normalizes pagination parameters.
// Page defaults to DefaultPage if less than 1.
// PageSize defaults to DefaultPageSize if less than 1, and is capped at MaxPageSize.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ParsePagination parses page and page_size from the query string with defaults applied.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "page_size", constants.DefaultPageSize),
	)
}

// LimitOffset is the limit/offset form used by the activity log.
type LimitOffset struct {
	Limit  int
	Offset int
}

// ParseLimitOffset reads limit and offset; limit falls back to defaultLimit and
// is capped at maxLimit, a negative offset becomes zero.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) LimitOffset {
	limit := parseQueryInt(c, "limit", defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if val := c.Query("offset"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			offset = n
		}
	}
	return LimitOffset{Limit: limit, Offset: offset}
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
