package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between support tickets and persistence models.
type TicketMapper interface {
	ToModel(t *support.Ticket) *models.SupportTicketModel
	ToDomain(model *models.SupportTicketModel) (*support.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *support.Ticket) *models.SupportTicketModel {
	return &models.SupportTicketModel{
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

func (m *TicketMapperImpl) ToDomain(model *models.SupportTicketModel) (*support.Ticket, error) {
	return support.ReconstructTicket(
		model.ID,
		model.Reference,
		model.RequesterID,
		model.Email,
		model.Name,
		vo.Category(model.Category),
		model.Subject,
		model.Message,
		vo.Priority(model.Priority),
		vo.TicketStatus(model.Status),
		model.AssigneeID,
		model.AdminNotes,
		model.ResolvedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
