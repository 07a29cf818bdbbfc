package usecases

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lumastory/lumastory/internal/application/support/dto"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/id"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const maxRequesterNameLength = 100

type CreateTicketCommand struct {
	RequesterID string
	Email       string
	Name        string
	Category    string
	Subject     string
	Message     string
}

type CreateTicketUseCase struct {
	ticketRepo support.Repository
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo support.Repository,
	notifier TicketNotifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute persists the ticket first; notification failures are logged only.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketReceiptDTO, error) {
	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var name *string
	if n := strings.TrimSpace(cmd.Name); n != "" {
		if utf8.RuneCountInString(n) > maxRequesterNameLength {
			return nil, errors.NewValidationError(fmt.Sprintf("name exceeds maximum length of %d characters", maxRequesterNameLength))
		}
		name = &n
	}
	var requesterID *string
	if cmd.RequesterID != "" {
		requesterID = &cmd.RequesterID
	}

	reference, err := id.NewTicketReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket reference: %w", err)
	}

	ticket, err := support.NewTicket(uuid.NewString(), reference, requesterID, cmd.Email, name, category, cmd.Subject, cmd.Message)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, ticket); err != nil {
		uc.logger.Errorw("failed to save support ticket", "category", category, "error", err)
		return nil, fmt.Errorf("failed to save support ticket: %w", err)
	}

	uc.logger.Infow("support ticket created",
		"ticket_id", ticket.ID(),
		"reference", ticket.Reference(),
		"category", category,
		"priority", ticket.Priority(),
	)

	if err := uc.notifier.NotifyTicketCreated(ctx, ticket); err != nil {
		uc.logger.Warnw("failed to send support ticket notifications",
			"ticket_id", ticket.ID(),
			"error", err,
		)
	}

	return dto.ToTicketReceiptDTO(ticket), nil
}
