package dto

import (
	"time"

	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
)

// AdminUserDTO is the admin view of one account.
type AdminUserDTO struct {
	User  *userdto.UserDTO        `json:"user"`
	Usage *usagedto.UsageStatsDTO `json:"usage"`
}

// AnalyticsOverviewDTO is a point-in-time snapshot for the admin dashboard.
type AnalyticsOverviewDTO struct {
	Users              UsersSection `json:"users"`
	StoriesToday       int64        `json:"storiesToday"`
	PendingReports     int64        `json:"pendingReports"`
	OpenTickets        int64        `json:"openTickets"`
	AdminActivity24h   int64        `json:"adminActivity24h"`
	AuditWriteFailures int64        `json:"auditWriteFailures"`
	GeneratedAt        time.Time    `json:"generatedAt"`
}

// UsersSection counts accounts in total and per tier.
type UsersSection struct {
	Total  int64            `json:"total"`
	ByTier map[string]int64 `json:"byTier"`
}
