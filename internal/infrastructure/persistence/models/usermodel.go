package models

import "time"

// UserModel represents the database persistence model for users.
type UserModel struct {
	ID               string  `gorm:"primaryKey;size:36"`
	Email            string  `gorm:"size:255;not null;index"`
	DisplayName      string  `gorm:"size:100;not null"`
	SubscriptionTier string  `gorm:"size:20;not null;default:trial;index"`
	Role             string  `gorm:"size:20;not null;default:user"`
	StripeCustomerID *string `gorm:"size:64;uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserModel) TableName() string {
	return "users"
}
