package usage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/errors"
)

func newService(t *testing.T, users *testutil.MockUserRepository, ledger *testutil.MockLedger) (*LimitCheckService, *testutil.MockLogger) {
	t.Helper()
	log := testutil.NewMockLogger()
	return NewLimitCheckService(users, ledger, testutil.DefaultPolicy(), log), log
}

func TestCanPerform_TrialCapIsMonotonic(t *testing.T) {
	ctx := context.Background()
	u := testutil.NewUser("u-trial", vo.TierTrial)
	ledger := testutil.NewMockLedger()
	svc, _ := newService(t, testutil.NewMockUserRepository(u), ledger)

	d, err := svc.CanPerform(ctx, u.ID(), usage.ActionCreateStory)
	require.NoError(t, err)
	require.True(t, d.Allowed)

	rec, err := svc.RecordStoryCreated(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TrialStoriesGenerated)
	assert.True(t, rec.TrialCompleted)

	d, err = svc.CanPerform(ctx, u.ID(), usage.ActionCreateStory)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, usage.ReasonTrialExhausted, d.Reason)
	assert.True(t, d.RequiresUpgrade)

	exhausted, err := svc.IsTrialExhausted(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, exhausted)

	// A reset never reopens the trial.
	_, err = ledger.ResetDailyCounters(ctx, "2999-01-01")
	require.NoError(t, err)
	d, err = svc.CanPerform(ctx, u.ID(), usage.ActionCreateStory)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestCanPerform_DailyLimitRespectsBusinessDay(t *testing.T) {
	ctx := context.Background()
	u := testutil.NewUser("u-pro", vo.TierPro)
	ledger := testutil.NewMockLedger()
	ledger.Seed(usage.Record{UserID: u.ID(), StoriesGeneratedToday: 10, CounterDate: biztime.Today()})
	svc, log := newService(t, testutil.NewMockUserRepository(u), ledger)

	d, err := svc.CanPerform(ctx, u.ID(), usage.ActionCreateStory)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, usage.ReasonDailyLimitReached, d.Reason)
	assert.Equal(t, 10, d.CurrentCount)
	assert.Equal(t, 10, d.MaxCount)
	assert.True(t, log.HasLevel("INFO"))

	ledger.Seed(usage.Record{UserID: u.ID(), StoriesGeneratedToday: 10, CounterDate: "2000-01-01"})
	d, err = svc.CanPerform(ctx, u.ID(), usage.ActionCreateStory)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.CurrentCount)
}

func TestCanPerform_ChildProfileCountFromLedger(t *testing.T) {
	ctx := context.Background()
	u := testutil.NewUser("u-fam", vo.TierFamily)
	ledger := testutil.NewMockLedger()
	ledger.ProfileCounter = func(string) int { return 3 }
	svc, _ := newService(t, testutil.NewMockUserRepository(u), ledger)

	d, err := svc.CanPerform(ctx, u.ID(), usage.ActionCreateChildProfile)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 3, d.CurrentCount)
	assert.Equal(t, 3, d.MaxCount)
	assert.False(t, d.RequiresUpgrade)
}

func TestCanPerform_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, testutil.NewMockUserRepository(), testutil.NewMockLedger())

	_, err := svc.CanPerform(ctx, "missing", usage.ActionCreateStory)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = svc.CanPerform(ctx, "missing", usage.Action("fly"))
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestIsTrialExhausted_NonTrialUser(t *testing.T) {
	u := testutil.NewUser("u-pro", vo.TierPro)
	ledger := testutil.NewMockLedger()
	ledger.Seed(usage.Record{UserID: u.ID(), TrialStoriesGenerated: 1, TrialCompleted: true})
	svc, _ := newService(t, testutil.NewMockUserRepository(u), ledger)

	exhausted, err := svc.IsTrialExhausted(context.Background(), u.ID())
	require.NoError(t, err)
	assert.False(t, exhausted)
}

func TestRecordStoryCreated_PaidTierSkipsTrialCounter(t *testing.T) {
	u := testutil.NewUser("u-pro", vo.TierPro)
	svc, _ := newService(t, testutil.NewMockUserRepository(u), testutil.NewMockLedger())

	rec, err := svc.RecordStoryCreated(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.StoriesGeneratedToday)
	assert.Equal(t, 0, rec.TrialStoriesGenerated)
	assert.False(t, rec.TrialCompleted)
}

func TestGetUsageStats(t *testing.T) {
	u := testutil.NewUser("u-pro", vo.TierPro)
	ledger := testutil.NewMockLedger()
	ledger.Seed(usage.Record{UserID: u.ID(), StoriesGeneratedToday: 4, CounterDate: biztime.Today()})
	ledger.ProfileCounter = func(string) int { return 1 }
	svc, _ := newService(t, testutil.NewMockUserRepository(u), ledger)

	stats, err := svc.GetUsageStats(context.Background(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, "pro", stats.Tier)
	assert.Equal(t, 4, stats.StoriesGeneratedToday)
	require.NotNil(t, stats.StoriesRemainingToday)
	assert.Equal(t, 6, *stats.StoriesRemainingToday)
	assert.Equal(t, 1, stats.ChildProfileCount)
	assert.Equal(t, 10, stats.Limits.MaxStoriesPerDay)
	assert.Zero(t, stats.Limits.TrialStoryCap)
}
