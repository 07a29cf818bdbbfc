package support

import (
	"github.com/lumastory/lumastory/internal/application/support/usecases"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type ContactRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Category string `json:"category" binding:"required,oneof=bug_report account_issue billing_payment general_inquiry"`
	Subject  string `json:"subject" binding:"required,min=5,max=200"`
	Message  string `json:"message" binding:"required,min=20,max=2000"`
}

func (r *ContactRequest) ToCommand(requesterID string) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		RequesterID: requesterID,
		Email:       r.Email,
		Name:        r.Name,
		Category:    r.Category,
		Subject:     r.Subject,
		Message:     r.Message,
	}
}

type UpdateTicketRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	AssigneeID *string `json:"assigneeId" binding:"omitempty,max=64"`
	AdminNotes *string `json:"adminNotes" binding:"omitempty,max=5000"`
}

type ListTicketsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Category string `form:"category" binding:"omitempty,oneof=bug_report account_issue billing_payment general_inquiry"`
}

func (r *ListTicketsRequest) ToQuery(p utils.Pagination) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Status:   r.Status,
		Category: r.Category,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
