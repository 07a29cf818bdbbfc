package models

import "time"

type SupportTicketModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Reference   string  `gorm:"size:20;not null;uniqueIndex"`
	RequesterID *string `gorm:"size:36;index"`
	Email       string  `gorm:"size:255;not null"`
	Name        *string `gorm:"size:100"`
	Category    string  `gorm:"size:30;not null;index"`
	Subject     string  `gorm:"size:200;not null"`
	Message     string  `gorm:"type:text;not null"`
	Priority    string  `gorm:"size:10;not null"`
	Status      string  `gorm:"size:20;not null;default:open;index"`
	AssigneeID  *string `gorm:"size:36"`
	AdminNotes  *string `gorm:"type:text"`
	ResolvedAt  *time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (SupportTicketModel) TableName() string {
	return "support_tickets"
}
