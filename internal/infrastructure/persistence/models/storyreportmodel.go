package models

import "time"

// StoryReportModel is a user complaint about a story. story_id has no
// foreign key so reports outlive a story deleted by moderation.
type StoryReportModel struct {
	ID              string  `gorm:"primaryKey;size:36"`
	ReporterID      string  `gorm:"size:36;not null;index"`
	StoryID         string  `gorm:"size:36;not null;index"`
	Reason          string  `gorm:"size:40;not null"`
	Description     string  `gorm:"type:text"`
	Status          string  `gorm:"size:20;not null;default:pending;index"`
	ActionTaken     *string `gorm:"size:40"`
	ReviewerID      *string `gorm:"size:36"`
	ReviewedAt      *time.Time
	ResolutionNotes *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (StoryReportModel) TableName() string {
	return "story_reports"
}
