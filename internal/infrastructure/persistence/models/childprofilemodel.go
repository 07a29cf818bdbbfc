package models

import "time"

type ChildProfileModel struct {
	ID         string     `gorm:"primaryKey;size:36"`
	UserID     string     `gorm:"size:36;not null;uniqueIndex:idx_child_profiles_user_name"`
	Name       string     `gorm:"size:50;not null"`
	NameKey    string     `gorm:"size:50;not null;uniqueIndex:idx_child_profiles_user_name"`
	Nickname   *string    `gorm:"size:50"`
	BirthDate  *time.Time `gorm:"type:date"`
	Appearance *string    `gorm:"size:500"`
	AvatarURL  *string    `gorm:"size:1024"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ChildProfileModel) TableName() string {
	return "child_profiles"
}
