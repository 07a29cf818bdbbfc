package models

import "time"

// UsageRecordModel holds one user's counters. Rows are created lazily by the
// first increment.
type UsageRecordModel struct {
	UserID                string `gorm:"primaryKey;size:36"`
	StoriesGeneratedToday int    `gorm:"not null;default:0"`
	// CounterDate is the business day (YYYY-MM-DD) StoriesGeneratedToday belongs to.
	CounterDate           string `gorm:"size:10;not null;default:''"`
	TrialStoriesGenerated int    `gorm:"not null;default:0"`
	TrialCompleted        bool   `gorm:"not null;default:false"`
	UpdatedAt             time.Time
}

func (UsageRecordModel) TableName() string {
	return "usage_records"
}
