package dto

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/shared/mapper"
)

type ActivityEntryDTO struct {
	ID         string         `json:"id"`
	AdminID    string         `json:"adminId"`
	ActionType string         `json:"actionType"`
	TargetID   *string        `json:"targetId,omitempty"`
	TargetType *string        `json:"targetType,omitempty"`
	Details    map[string]any `json:"details"`
	IPAddress  *string        `json:"ipAddress,omitempty"`
	UserAgent  *string        `json:"userAgent,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type PaginationDTO struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type ActivityLogDTO struct {
	Entries    []*ActivityEntryDTO `json:"entries"`
	Pagination PaginationDTO       `json:"pagination"`
}

func ToActivityEntryDTO(e *audit.Entry) *ActivityEntryDTO {
	out := &ActivityEntryDTO{
		ID:         e.ID(),
		AdminID:    e.AdminID(),
		ActionType: e.ActionType().String(),
		TargetID:   e.TargetID(),
		Details:    e.Details(),
		IPAddress:  e.IPAddress(),
		UserAgent:  e.UserAgent(),
		CreatedAt:  e.CreatedAt(),
	}
	if tt := e.TargetType(); tt != nil {
		s := string(*tt)
		out.TargetType = &s
	}
	return out
}

func ToActivityLogDTO(entries []*audit.Entry, total int64, limit, offset int) *ActivityLogDTO {
	return &ActivityLogDTO{
		Entries: mapper.MapSlice(entries, ToActivityEntryDTO),
		Pagination: PaginationDTO{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+len(entries)) < total,
		},
	}
}
