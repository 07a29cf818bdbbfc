package usecases

import (
	"context"
	"sync"

	"github.com/lumastory/lumastory/internal/domain/support"
)

type mockTicketNotifier struct {
	mu                      sync.Mutex
	NotifyTicketCreatedFunc func(ctx context.Context, ticket *support.Ticket) error
	Notified                []string
}

func (m *mockTicketNotifier) NotifyTicketCreated(ctx context.Context, ticket *support.Ticket) error {
	m.mu.Lock()
	m.Notified = append(m.Notified, ticket.ID())
	m.mu.Unlock()
	if m.NotifyTicketCreatedFunc != nil {
		return m.NotifyTicketCreatedFunc(ctx, ticket)
	}
	return nil
}
