package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/audit"
)

func TestLogActivity_Appends(t *testing.T) {
	repo := testutil.NewMockAuditRepository()
	l := NewActivityLogger(repo, testutil.NewMockLogger())
	actor := Actor{AdminID: "admin-1", IPAddress: "10.1.1.1", UserAgent: "curl/8"}

	l.LogActivity(context.Background(), actor.Activity(audit.ActionUserView, audit.TargetUser, "user-1", nil))

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "admin-1", entries[0].AdminID())
	assert.Equal(t, audit.ActionUserView, entries[0].ActionType())
	require.NotNil(t, entries[0].UserAgent())
	assert.Equal(t, "curl/8", *entries[0].UserAgent())
	assert.Zero(t, l.Failures())
}

func TestLogActivity_FailureIsSwallowedAndCounted(t *testing.T) {
	repo := testutil.NewMockAuditRepository()
	repo.AppendError = errors.New("disk full")
	log := testutil.NewMockLogger()
	l := NewActivityLogger(repo, log)

	assert.NotPanics(t, func() {
		l.LogActivity(context.Background(), audit.EntryParams{AdminID: "admin-1", ActionType: audit.ActionAnalyticsView})
	})
	l.LogActivity(context.Background(), audit.EntryParams{AdminID: "", ActionType: audit.ActionAnalyticsView})

	assert.Equal(t, int64(2), l.Failures())
	assert.True(t, log.HasLevel("ERROR"))
}
