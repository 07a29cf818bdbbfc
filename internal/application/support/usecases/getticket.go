package usecases

import (
	"context"
	"fmt"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/support/dto"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/support"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/id"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type GetTicketQuery struct {
	// TicketID is either the UUID or the sup_ reference.
	TicketID string
	Actor    appaudit.Actor
}

type GetTicketUseCase struct {
	ticketRepo support.Repository
	recorder   appaudit.Recorder
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo support.Repository, recorder appaudit.Recorder, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		recorder:   recorder,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	ticket, err := findTicket(ctx, uc.ticketRepo, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get support ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	uc.recorder.LogActivity(ctx, query.Actor.Activity(audit.ActionTicketView, audit.TargetTicket, ticket.ID(), map[string]any{
		"reference": ticket.Reference(),
	}))
	return dto.ToTicketDTO(ticket), nil
}

func findTicket(ctx context.Context, repo support.Repository, ref string) (*support.Ticket, error) {
	var (
		ticket *support.Ticket
		err    error
	)
	if id.IsTicketReference(ref) {
		ticket, err = repo.GetByReference(ctx, ref)
	} else {
		ticket, err = repo.GetByID(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}
	if ticket == nil {
		return nil, errors.NewNotFoundError("support ticket not found")
	}
	return ticket, nil
}
