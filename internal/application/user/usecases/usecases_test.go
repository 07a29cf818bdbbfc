package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/application/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
)

func TestSyncUser_ProvisionsTrialUser(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	uc := NewSyncUserUseCase(repo, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), SyncUserCommand{UserID: "u-1", Email: "Parent@Example.com"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "trial", res.User.SubscriptionTier)
	assert.Equal(t, "user", res.User.Role)
	assert.Equal(t, "parent@example.com", res.User.Email)
	assert.Equal(t, "Parent", res.User.DisplayName)
}

func TestSyncUser_ExistingUserKeepsTier(t *testing.T) {
	repo := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierFamily))
	uc := NewSyncUserUseCase(repo, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), SyncUserCommand{UserID: "u-1", Email: "other@example.com", DisplayName: "Robin"})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "family", res.User.SubscriptionTier)
	assert.Equal(t, "Robin", res.User.DisplayName)
	assert.Equal(t, "u-1@example.com", res.User.Email)
	assert.Equal(t, 1, repo.Updates)

	_, err = uc.Execute(context.Background(), SyncUserCommand{UserID: "u-1", DisplayName: "Robin"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Updates)
}

func TestSyncUser_Errors(t *testing.T) {
	uc := NewSyncUserUseCase(testutil.NewMockUserRepository(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), SyncUserCommand{Email: "a@example.com"})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.Code)

	_, err = uc.Execute(context.Background(), SyncUserCommand{UserID: "u-2"})
	appErr = apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	repo := testutil.NewMockUserRepository()
	repo.GetError = errors.New("db down")
	_, err = NewSyncUserUseCase(repo, testutil.NewMockLogger()).Execute(context.Background(), SyncUserCommand{UserID: "u-3", Email: "a@example.com"})
	require.Error(t, err)
	assert.Nil(t, apperrors.GetAppError(err))
}

func TestGetAccount(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierPro))
	log := testutil.NewMockLogger()
	stats := usage.NewLimitCheckService(users, testutil.NewMockLedger(), testutil.DefaultPolicy(), log)
	uc := NewGetAccountUseCase(users, stats, log)

	got, err := uc.Execute(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.User.ID)
	assert.Equal(t, "pro", got.Usage.Tier)
	require.NotNil(t, got.Usage.StoriesRemainingToday)
	assert.Equal(t, 10, *got.Usage.StoriesRemainingToday)

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}
