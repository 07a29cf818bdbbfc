package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/support/dto"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// UpdateTicketCommand applies only the fields that are non-nil. An empty
// AssigneeID clears the assignment.
type UpdateTicketCommand struct {
	TicketID   string
	Actor      appaudit.Actor
	Status     *string
	AssigneeID *string
	AdminNotes *string
}

type UpdateTicketUseCase struct {
	ticketRepo support.Repository
	recorder   appaudit.Recorder
	logger     logger.Interface
}

func NewUpdateTicketUseCase(ticketRepo support.Repository, recorder appaudit.Recorder, logger logger.Interface) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	if cmd.Status == nil && cmd.AssigneeID == nil && cmd.AdminNotes == nil {
		return nil, errors.NewValidationError("at least one of status, assigneeId or adminNotes is required")
	}

	var status vo.TicketStatus
	if cmd.Status != nil {
		s, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		status = s
	}

	ticket, err := findTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if cmd.Status != nil {
		from := ticket.Status()
		if err := ticket.ChangeStatus(status); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changes["status"] = map[string]any{"from": from.String(), "to": status.String()}
	}
	if cmd.AssigneeID != nil {
		ticket.AssignTo(*cmd.AssigneeID)
		changes["assigneeId"] = *cmd.AssigneeID
	}
	if cmd.AdminNotes != nil {
		ticket.SetAdminNotes(*cmd.AdminNotes)
		changes["adminNotes"] = true
	}

	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		uc.logger.Errorw("failed to update support ticket", "ticket_id", ticket.ID(), "error", err)
		return nil, fmt.Errorf("failed to update support ticket: %w", err)
	}

	changes["reference"] = ticket.Reference()
	uc.recorder.LogActivity(ctx, cmd.Actor.Activity(audit.ActionTicketUpdate, audit.TargetTicket, ticket.ID(), changes))

	uc.logger.Infow("support ticket updated", "ticket_id", ticket.ID(), "status", ticket.Status(), "admin_id", cmd.Actor.AdminID)
	return dto.ToTicketDTO(ticket), nil
}
