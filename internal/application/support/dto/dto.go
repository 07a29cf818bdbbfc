package dto

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/support"
)

type TicketDTO struct {
	ID          string     `json:"id"`
	Reference   string     `json:"reference"`
	RequesterID *string    `json:"requesterId,omitempty"`
	Email       string     `json:"email"`
	Name        *string    `json:"name,omitempty"`
	Category    string     `json:"category"`
	Subject     string     `json:"subject"`
	Message     string     `json:"message"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	AdminNotes  *string    `json:"adminNotes,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TicketListItemDTO struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	Email      string    `json:"email"`
	Category   string    `json:"category"`
	Subject    string    `json:"subject"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	AssigneeID *string   `json:"assigneeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TicketReceiptDTO is what an anonymous requester gets back.
type TicketReceiptDTO struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
}

func ToTicketDTO(t *support.Ticket) *TicketDTO {
	return &TicketDTO{
		ID:          t.ID(),
		Reference:   t.Reference(),
		RequesterID: t.RequesterID(),
		Email:       t.Email(),
		Name:        t.Name(),
		Category:    t.Category().String(),
		Subject:     t.Subject(),
		Message:     t.Message(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		AssigneeID:  t.AssigneeID(),
		AdminNotes:  t.AdminNotes(),
		ResolvedAt:  t.ResolvedAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func ToTicketListItemDTO(t *support.Ticket) *TicketListItemDTO {
	return &TicketListItemDTO{
		ID:         t.ID(),
		Reference:  t.Reference(),
		Email:      t.Email(),
		Category:   t.Category().String(),
		Subject:    t.Subject(),
		Priority:   t.Priority().String(),
		Status:     t.Status().String(),
		AssigneeID: t.AssigneeID(),
		CreatedAt:  t.CreatedAt(),
	}
}

func ToTicketReceiptDTO(t *support.Ticket) *TicketReceiptDTO {
	return &TicketReceiptDTO{
		ID:        t.ID(),
		Reference: t.Reference(),
		Priority:  t.Priority().String(),
		Status:    t.Status().String(),
	}
}
