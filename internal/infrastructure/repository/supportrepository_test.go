package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
)

func newTicket(t *testing.T, id, reference string, category vo.Category) *support.Ticket {
	t.Helper()

	ticket, err := support.NewTicket(id, reference, nil, "parent@example.com", nil, category,
		"Cannot log in", "I tried resetting my password twice without luck.")
	require.NoError(t, err)
	return ticket
}

func TestTicketRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db, testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTicket(t, "tkt_1", "sup_AAAA1111", vo.CategoryAccountIssue)))
	require.NoError(t, repo.Create(ctx, newTicket(t, "tkt_2", "sup_BBBB2222", vo.CategoryBugReport)))
	require.NoError(t, repo.Create(ctx, newTicket(t, "tkt_3", "sup_CCCC3333", vo.CategoryBugReport)))

	t.Run("duplicate reference rejected", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, newTicket(t, "tkt_4", "sup_AAAA1111", vo.CategoryBugReport)))
	})

	t.Run("lookup by reference", func(t *testing.T) {
		got, err := repo.GetByReference(ctx, "sup_BBBB2222")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "tkt_2", got.ID())

		missing, err := repo.GetByReference(ctx, "sup_ZZZZ9999")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update and count", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "tkt_1")
		require.NoError(t, err)
		require.NoError(t, got.ChangeStatus(vo.StatusResolved))
		got.SetAdminNotes("password reset link resent")
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.GetByID(ctx, "tkt_1")
		require.NoError(t, err)
		assert.Equal(t, vo.StatusResolved, reloaded.Status())
		assert.NotNil(t, reloaded.ResolvedAt())
		require.NotNil(t, reloaded.AdminNotes())
		assert.Equal(t, "password reset link resent", *reloaded.AdminNotes())

		open, err := repo.CountByStatus(ctx, vo.StatusOpen, vo.StatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, int64(2), open)
	})

	t.Run("filter by category", func(t *testing.T) {
		category := vo.CategoryBugReport
		list, total, err := repo.List(ctx, support.TicketFilter{Category: &category})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	record := func(id string, action audit.ActionType, targetID string) {
		entry, err := audit.NewEntry(id, audit.EntryParams{
			AdminID:    "adm_1",
			ActionType: action,
			TargetID:   targetID,
			TargetType: audit.TargetUser,
			Details:    map[string]any{"from": "trial", "to": "pro"},
		})
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, entry))
		time.Sleep(2 * time.Millisecond)
	}
	record("act_1", audit.ActionUserView, "usr_1")
	record("act_2", audit.ActionUserTierChange, "usr_1")
	record("act_3", audit.ActionUserView, "usr_2")

	t.Run("newest first with details", func(t *testing.T) {
		entries, total, err := repo.List(ctx, audit.Filter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 3)
		assert.Equal(t, "act_3", entries[0].ID())
		assert.Equal(t, "pro", entries[0].Details()["to"])
	})

	t.Run("filters", func(t *testing.T) {
		action := audit.ActionUserView
		entries, total, err := repo.List(ctx, audit.Filter{ActionType: &action, TargetID: "usr_1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, "act_1", entries[0].ID())
	})

	t.Run("limit keeps total", func(t *testing.T) {
		entries, total, err := repo.List(ctx, audit.Filter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 1)
		assert.Equal(t, "act_2", entries[0].ID())
	})
}
