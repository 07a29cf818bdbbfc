package support

import (
	"context"

	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/query"
)

type TicketFilter struct {
	Status   *vo.TicketStatus
	Category *vo.Category
	query.PageFilter
}

// Repository persists tickets. Lookups return (nil, nil) when missing.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	GetByReference(ctx context.Context, reference string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	Update(ctx context.Context, ticket *Ticket) error
	CountByStatus(ctx context.Context, statuses ...vo.TicketStatus) (int64, error)
}
