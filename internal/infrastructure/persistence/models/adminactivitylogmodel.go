package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminActivityLogModel is append-only; there is no UpdatedAt.
type AdminActivityLogModel struct {
	ID         string         `gorm:"primaryKey;size:36"`
	AdminID    string         `gorm:"size:36;not null;index"`
	ActionType string         `gorm:"size:40;not null;index"`
	TargetID   *string        `gorm:"size:64;index"`
	TargetType *string        `gorm:"size:20"`
	Details    datatypes.JSON `gorm:"not null"`
	IPAddress  *string        `gorm:"size:64"`
	UserAgent  *string        `gorm:"size:512"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

func (AdminActivityLogModel) TableName() string {
	return "admin_activity_log"
}
