// Package models holds the GORM persistence models.
package models

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&UsageRecordModel{},
		&ChildProfileModel{},
		&StoryModel{},
		&StoryReportModel{},
		&SupportTicketModel{},
		&AdminActivityLogModel{},
	}
}
