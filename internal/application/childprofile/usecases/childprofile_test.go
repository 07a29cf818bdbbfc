package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/testutil"
	appusage "github.com/lumastory/lumastory/internal/application/usage"
	"github.com/lumastory/lumastory/internal/domain/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
)

type profileFixture struct {
	profiles *testutil.MockChildProfileRepository
	limits   *appusage.LimitCheckService
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	profiles := testutil.NewMockChildProfileRepository()
	ledger := testutil.NewMockLedger()
	ledger.ProfileCounter = func(userID string) int {
		n, _ := profiles.CountByUser(context.Background(), userID)
		return n
	}
	users := testutil.NewMockUserRepository(
		testutil.NewUser("trial", vo.TierTrial),
		testutil.NewUser("pro", vo.TierPro),
		testutil.NewUser("family", vo.TierFamily),
	)
	return &profileFixture{
		profiles: profiles,
		limits:   appusage.NewLimitCheckService(users, ledger, testutil.DefaultPolicy(), testutil.NewMockLogger()),
	}
}

func TestCreateChildProfile_FamilyCeiling(t *testing.T) {
	f := newProfileFixture(t)
	uc := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	ctx := context.Background()

	for _, name := range []string{"Ava", "Ben", "Cleo"} {
		res, err := uc.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: name})
		require.NoError(t, err)
		require.Nil(t, res.Denied, name)
		assert.Equal(t, name, res.Profile.Name)
	}

	res, err := uc.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: "Dan"})
	require.NoError(t, err)
	require.NotNil(t, res.Denied)
	assert.Equal(t, string(usage.ReasonChildProfileLimitReached), res.Denied.Reason)
	assert.Equal(t, 3, res.Denied.CurrentCount)
	assert.Equal(t, 3, res.Denied.MaxCount)
}

func TestCreateChildProfile_LimitRecheckedAtInsert(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	seed := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	for _, name := range []string{"Ava", "Ben", "Cleo"} {
		_, err := seed.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: name})
		require.NoError(t, err)
	}

	// the limit check ran while the family still had a free slot
	limits := &staleLimitChecker{next: f.limits, first: &usage.Decision{Allowed: true, CurrentCount: 2, MaxCount: 3}}
	uc := NewCreateChildProfileUseCase(f.profiles, limits, testutil.NewMockLogger())

	res, err := uc.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: "Dan"})
	require.NoError(t, err)
	require.NotNil(t, res.Denied)
	assert.Nil(t, res.Profile)
	assert.Equal(t, string(usage.ReasonChildProfileLimitReached), res.Denied.Reason)
	assert.Equal(t, 3, res.Denied.CurrentCount)

	count, err := f.profiles.CountByUser(ctx, "family")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCreateChildProfile_TrialAlwaysDenied(t *testing.T) {
	f := newProfileFixture(t)
	uc := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), CreateChildProfileCommand{UserID: "trial", Name: "Ava"})
	require.NoError(t, err)
	require.NotNil(t, res.Denied)
	assert.Equal(t, 0, res.Denied.MaxCount)
	assert.True(t, res.Denied.RequiresUpgrade)
}

func TestCreateChildProfile_DeleteFreesSlot(t *testing.T) {
	f := newProfileFixture(t)
	create := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	del := NewDeleteChildProfileUseCase(f.profiles, testutil.NewMockLogger())
	ctx := context.Background()

	res, err := create.Execute(ctx, CreateChildProfileCommand{UserID: "pro", Name: "Ava"})
	require.NoError(t, err)
	require.NotNil(t, res.Profile)

	res2, err := create.Execute(ctx, CreateChildProfileCommand{UserID: "pro", Name: "Ben"})
	require.NoError(t, err)
	require.NotNil(t, res2.Denied)

	require.NoError(t, del.Execute(ctx, DeleteChildProfileCommand{ProfileID: res.Profile.ID, UserID: "pro"}))

	res3, err := create.Execute(ctx, CreateChildProfileCommand{UserID: "pro", Name: "Ben"})
	require.NoError(t, err)
	assert.Nil(t, res3.Denied)
}

func TestCreateChildProfile_Validation(t *testing.T) {
	f := newProfileFixture(t)
	uc := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: "Zoë"})
	require.NoError(t, err)

	badDate := "12/01/2020"
	tests := []struct {
		name string
		cmd  CreateChildProfileCommand
	}{
		{"missing name", CreateChildProfileCommand{UserID: "family", Name: "  "}},
		{"duplicate ignoring case", CreateChildProfileCommand{UserID: "family", Name: "ZOË"}},
		{"bad birth date", CreateChildProfileCommand{UserID: "family", Name: "Max", BirthDate: &badDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestDeleteChildProfile_ForeignIsForbidden(t *testing.T) {
	f := newProfileFixture(t)
	create := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	del := NewDeleteChildProfileUseCase(f.profiles, testutil.NewMockLogger())
	ctx := context.Background()

	res, err := create.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: "Ava"})
	require.NoError(t, err)

	err = del.Execute(ctx, DeleteChildProfileCommand{ProfileID: res.Profile.ID, UserID: "pro"})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.Code)

	err = del.Execute(ctx, DeleteChildProfileCommand{ProfileID: "missing", UserID: "family"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGenerateAvatar(t *testing.T) {
	f := newProfileFixture(t)
	create := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	ctx := context.Background()
	res, err := create.Execute(ctx, CreateChildProfileCommand{UserID: "pro", Name: "Ava"})
	require.NoError(t, err)

	t.Run("stored copy replaces source", func(t *testing.T) {
		store := &mockAvatarStore{StoreFunc: func(ctx context.Context, profileID, sourceURL string) string {
			return "https://cdn.example.com/avatars/" + profileID + ".png"
		}}
		uc := NewGenerateAvatarUseCase(f.profiles, f.limits, &mockAvatarGenerator{}, store, testutil.NewMockLogger())

		out, err := uc.Execute(ctx, GenerateAvatarCommand{ProfileID: res.Profile.ID, UserID: "pro"})
		require.NoError(t, err)
		require.NotNil(t, out.Profile.AvatarURL)
		assert.Contains(t, *out.Profile.AvatarURL, "cdn.example.com")
	})

	t.Run("generator failure is a bad gateway", func(t *testing.T) {
		gen := &mockAvatarGenerator{GenerateAvatarFunc: func(ctx context.Context, req AvatarRequest) (string, error) {
			return "", errors.New("quota")
		}}
		uc := NewGenerateAvatarUseCase(f.profiles, f.limits, gen, &mockAvatarStore{}, testutil.NewMockLogger())

		_, err := uc.Execute(ctx, GenerateAvatarCommand{ProfileID: res.Profile.ID, UserID: "pro"})
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 502, appErr.Code)
	})
}

func TestListChildProfiles(t *testing.T) {
	f := newProfileFixture(t)
	create := NewCreateChildProfileUseCase(f.profiles, f.limits, testutil.NewMockLogger())
	list := NewListChildProfilesUseCase(f.profiles, testutil.NewMockLogger())
	ctx := context.Background()

	got, err := list.Execute(ctx, "family")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = create.Execute(ctx, CreateChildProfileCommand{UserID: "family", Name: "Ava"})
	require.NoError(t, err)
	got, err = list.Execute(ctx, "family")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
