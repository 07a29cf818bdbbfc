package usecases

import (
	"context"

	"github.com/lumastory/lumastory/internal/domain/support"
)

// TicketNotifier tells the support inbox and the requester about a new ticket.
type TicketNotifier interface {
	NotifyTicketCreated(ctx context.Context, ticket *support.Ticket) error
}
