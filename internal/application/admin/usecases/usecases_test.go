package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/application/usage"
	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	modvo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/domain/support"
	supportvo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
	domainusage "github.com/lumastory/lumastory/internal/domain/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
)

var admin = appaudit.Actor{AdminID: "admin-1", IPAddress: "10.0.0.1", UserAgent: "test"}

func newRecorder(repo *testutil.MockAuditRepository) *appaudit.ActivityLogger {
	return appaudit.NewActivityLogger(repo, testutil.NewMockLogger())
}

func TestGetUser_AuditsView(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierTrial))
	ledger := testutil.NewMockLedger()
	ledger.Seed(domainusage.Record{UserID: "u-1", TrialStoriesGenerated: 1, TrialCompleted: true})
	audits := testutil.NewMockAuditRepository()
	stats := usage.NewLimitCheckService(users, ledger, testutil.DefaultPolicy(), testutil.NewMockLogger())
	uc := NewGetUserUseCase(users, stats, newRecorder(audits), testutil.NewMockLogger())

	got, err := uc.Execute(context.Background(), GetUserQuery{UserID: "u-1", Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, "trial", got.User.SubscriptionTier)
	assert.True(t, got.Usage.TrialCompleted)

	entries := audits.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionUserView, entries[0].ActionType())
	require.NotNil(t, entries[0].TargetID())
	assert.Equal(t, "u-1", *entries[0].TargetID())

	_, err = uc.Execute(context.Background(), GetUserQuery{UserID: "nobody", Actor: admin})
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Len(t, audits.Entries(), 1)
}

func TestChangeTier(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierTrial))
	audits := testutil.NewMockAuditRepository()
	uc := NewChangeTierUseCase(users, newRecorder(audits), testutil.NewMockLogger())

	got, err := uc.Execute(context.Background(), ChangeTierCommand{UserID: "u-1", Tier: "family", Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, "family", got.SubscriptionTier)

	stored, err := users.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, vo.TierFamily, stored.Tier())

	entries := audits.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionUserTierChange, entries[0].ActionType())
	assert.Equal(t, "trial", entries[0].Details()["from"])
	assert.Equal(t, "family", entries[0].Details()["to"])
}

func TestChangeTier_AuditFailureStillSucceeds(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierPro))
	audits := testutil.NewMockAuditRepository()
	audits.AppendError = errors.New("audit table locked")
	recorder := newRecorder(audits)
	uc := NewChangeTierUseCase(users, recorder, testutil.NewMockLogger())

	got, err := uc.Execute(context.Background(), ChangeTierCommand{UserID: "u-1", Tier: "trial", Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, "trial", got.SubscriptionTier)
	assert.Equal(t, int64(1), recorder.Failures())
	assert.Empty(t, audits.Entries())
}

func TestChangeTier_Errors(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierPro))
	audits := testutil.NewMockAuditRepository()
	uc := NewChangeTierUseCase(users, newRecorder(audits), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ChangeTierCommand{UserID: "u-1", Tier: "gold", Actor: admin})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = uc.Execute(context.Background(), ChangeTierCommand{UserID: "missing", Tier: "pro", Actor: admin})
	assert.True(t, apperrors.IsNotFoundError(err))

	users.UpdateError = errors.New("db down")
	_, err = uc.Execute(context.Background(), ChangeTierCommand{UserID: "u-1", Tier: "family", Actor: admin})
	require.Error(t, err)
	assert.Empty(t, audits.Entries())
}

func TestChangeRole(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierPro), testutil.NewAdmin("admin-1"))
	audits := testutil.NewMockAuditRepository()
	uc := NewChangeRoleUseCase(users, newRecorder(audits), testutil.NewMockLogger())

	got, err := uc.Execute(context.Background(), ChangeRoleCommand{UserID: "u-1", Role: "superadmin", Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, "superadmin", got.Role)
	assert.Equal(t, 1, audits.CountAction(audit.ActionUserRoleChange))

	_, err = uc.Execute(context.Background(), ChangeRoleCommand{UserID: "u-1", Role: "owner", Actor: admin})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = uc.Execute(context.Background(), ChangeRoleCommand{UserID: "admin-1", Role: "user", Actor: admin})
	appErr = apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, 1, audits.CountAction(audit.ActionUserRoleChange))
}

type stubFailures int64

func (s stubFailures) Failures() int64 { return int64(s) }

func TestGetAnalyticsOverview(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository(
		testutil.NewUser("u-1", vo.TierTrial),
		testutil.NewUser("u-2", vo.TierTrial),
		testutil.NewUser("u-3", vo.TierPro),
		testutil.NewAdmin("admin-1"),
	)

	s, err := story.NewStory("s-1", "u-3", nil, "Moon Boat", "moon", "A boat sailed to the moon.")
	require.NoError(t, err)
	stories := testutil.NewMockStoryRepository(s)

	pending, err := moderation.NewReport("r-1", "u-1", "s-1", modvo.ReasonSpam, "")
	require.NoError(t, err)
	reports := testutil.NewMockReportRepository(pending)

	tickets := testutil.NewMockTicketRepository()
	for i, category := range []supportvo.Category{supportvo.CategoryBugReport, supportvo.CategoryBillingPayment} {
		ticket, err := support.NewTicket(string(rune('a'+i)), "sup_0000000"+string(rune('a'+i)), nil, "p@example.com", nil, category, "Subject line", "A message that is long enough.")
		require.NoError(t, err)
		require.NoError(t, tickets.Create(ctx, ticket))
	}

	audits := testutil.NewMockAuditRepository()
	recorder := newRecorder(audits)
	recorder.LogActivity(ctx, admin.Activity(audit.ActionUserView, audit.TargetUser, "u-1", nil))

	uc := NewGetAnalyticsOverviewUseCase(users, stories, reports, tickets, audits, stubFailures(2), recorder, testutil.NewMockLogger())

	got, err := uc.Execute(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Users.Total)
	assert.Equal(t, int64(2), got.Users.ByTier["trial"])
	assert.Equal(t, int64(1), got.Users.ByTier["pro"])
	assert.Equal(t, int64(1), got.Users.ByTier["family"])
	assert.Equal(t, int64(1), got.StoriesToday)
	assert.Equal(t, int64(1), got.PendingReports)
	assert.Equal(t, int64(2), got.OpenTickets)
	assert.Equal(t, int64(1), got.AdminActivity24h)
	assert.Equal(t, int64(2), got.AuditWriteFailures)
	assert.Equal(t, 1, audits.CountAction(audit.ActionAnalyticsView))
}
