package models

import "time"

type StoryModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	UserID         string    `gorm:"size:36;not null;index:idx_stories_user_created"`
	ChildProfileID *string   `gorm:"size:36"`
	Title          string    `gorm:"size:200;not null"`
	Prompt         string    `gorm:"type:text;not null"`
	Content        string    `gorm:"type:text;not null"`
	Visibility     string    `gorm:"size:10;not null;default:private"`
	CreatedAt      time.Time `gorm:"index:idx_stories_user_created;index"`
	UpdatedAt      time.Time
}

func (StoryModel) TableName() string {
	return "stories"
}
