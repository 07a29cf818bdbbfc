package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/id"
)

const message = "I was charged twice for my family plan this month."

func validCommand(category string) CreateTicketCommand {
	return CreateTicketCommand{
		Email:    "parent@example.com",
		Name:     "Pat",
		Category: category,
		Subject:  "Double charge",
		Message:  message,
	}
}

func TestCreateTicket_PriorityByCategory(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"billing_payment", "high"},
		{"bug_report", "normal"},
		{"account_issue", "normal"},
		{"general_inquiry", "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			repo := testutil.NewMockTicketRepository()
			uc := NewCreateTicketUseCase(repo, &mockTicketNotifier{}, testutil.NewMockLogger())

			got, err := uc.Execute(context.Background(), validCommand(tt.category))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Priority)
			assert.Equal(t, "open", got.Status)
			assert.True(t, id.IsTicketReference(got.Reference))
		})
	}
}

func TestCreateTicket_NotificationFailureStillSucceeds(t *testing.T) {
	repo := testutil.NewMockTicketRepository()
	notifier := &mockTicketNotifier{NotifyTicketCreatedFunc: func(ctx context.Context, _ *support.Ticket) error {
		return errors.New("smtp: connection refused")
	}}
	log := testutil.NewMockLogger()
	uc := NewCreateTicketUseCase(repo, notifier, log)

	got, err := uc.Execute(context.Background(), validCommand("bug_report"))
	require.NoError(t, err)
	assert.Len(t, notifier.Notified, 1)
	assert.True(t, log.HasLevel("WARN"))

	saved, err := repo.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestCreateTicket_PersistFailureSkipsNotification(t *testing.T) {
	repo := testutil.NewMockTicketRepository()
	repo.CreateError = errors.New("db down")
	notifier := &mockTicketNotifier{}
	uc := NewCreateTicketUseCase(repo, notifier, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), validCommand("bug_report"))
	require.Error(t, err)
	assert.Empty(t, notifier.Notified)
}

func TestCreateTicket_Validation(t *testing.T) {
	uc := NewCreateTicketUseCase(testutil.NewMockTicketRepository(), &mockTicketNotifier{}, testutil.NewMockLogger())

	mutate := func(f func(*CreateTicketCommand)) CreateTicketCommand {
		cmd := validCommand("bug_report")
		f(&cmd)
		return cmd
	}
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{"bad category", mutate(func(c *CreateTicketCommand) { c.Category = "sales" })},
		{"bad email", mutate(func(c *CreateTicketCommand) { c.Email = "nope" })},
		{"short subject", mutate(func(c *CreateTicketCommand) { c.Subject = "Hi" })},
		{"short message", mutate(func(c *CreateTicketCommand) { c.Message = "help" })},
		{"long name", mutate(func(c *CreateTicketCommand) { c.Name = strings.Repeat("n", 101) })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestUpdateTicket(t *testing.T) {
	repo := testutil.NewMockTicketRepository()
	audits := testutil.NewMockAuditRepository()
	recorder := appaudit.NewActivityLogger(audits, testutil.NewMockLogger())
	create := NewCreateTicketUseCase(repo, &mockTicketNotifier{}, testutil.NewMockLogger())
	update := NewUpdateTicketUseCase(repo, recorder, testutil.NewMockLogger())
	get := NewGetTicketUseCase(repo, recorder, testutil.NewMockLogger())
	actor := appaudit.Actor{AdminID: "admin-1"}
	ctx := context.Background()

	receipt, err := create.Execute(ctx, validCommand("billing_payment"))
	require.NoError(t, err)

	resolved := "resolved"
	assignee := "admin-2"
	got, err := update.Execute(ctx, UpdateTicketCommand{TicketID: receipt.ID, Actor: actor, Status: &resolved, AssigneeID: &assignee})
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)
	assert.Equal(t, "high", got.Priority)
	require.NotNil(t, got.ResolvedAt)
	require.NotNil(t, got.AssigneeID)

	reopened := "open"
	notes := "customer replied"
	got, err = update.Execute(ctx, UpdateTicketCommand{TicketID: receipt.Reference, Actor: actor, Status: &reopened, AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "open", got.Status)
	require.NotNil(t, got.AdminNotes)
	assert.Equal(t, "customer replied", *got.AdminNotes)

	assert.Equal(t, 2, audits.CountAction(audit.ActionTicketUpdate))

	viewed, err := get.Execute(ctx, GetTicketQuery{TicketID: receipt.Reference, Actor: actor})
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, viewed.ID)
	assert.Equal(t, 1, audits.CountAction(audit.ActionTicketView))
}

func TestUpdateTicket_Errors(t *testing.T) {
	repo := testutil.NewMockTicketRepository()
	update := NewUpdateTicketUseCase(repo, appaudit.NewActivityLogger(testutil.NewMockAuditRepository(), testutil.NewMockLogger()), testutil.NewMockLogger())
	ctx := context.Background()

	_, err := update.Execute(ctx, UpdateTicketCommand{TicketID: "t-1"})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	bad := "archived"
	_, err = update.Execute(ctx, UpdateTicketCommand{TicketID: "t-1", Status: &bad})
	appErr = apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	open := string(vo.StatusOpen)
	_, err = update.Execute(ctx, UpdateTicketCommand{TicketID: "sup_missing1", Status: &open})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListTickets(t *testing.T) {
	repo := testutil.NewMockTicketRepository()
	create := NewCreateTicketUseCase(repo, &mockTicketNotifier{}, testutil.NewMockLogger())
	list := NewListTicketsUseCase(repo, testutil.NewMockLogger())
	ctx := context.Background()

	for _, c := range []string{"billing_payment", "bug_report", "bug_report"} {
		_, err := create.Execute(ctx, validCommand(c))
		require.NoError(t, err)
	}

	res, err := list.Execute(ctx, ListTicketsQuery{Category: "bug_report"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = list.Execute(ctx, ListTicketsQuery{Status: "open"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)

	_, err = list.Execute(ctx, ListTicketsQuery{Category: "sales"})
	assert.Error(t, err)
}
