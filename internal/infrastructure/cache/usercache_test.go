package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
)

type countingUserRepository struct {
	*testutil.MockUserRepository
	gets int
}

func (r *countingUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.gets++
	return r.MockUserRepository.GetByID(ctx, id)
}

func setupUserCache(t *testing.T, users ...*user.User) (*CachedUserRepository, *countingUserRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingUserRepository{MockUserRepository: testutil.NewMockUserRepository(users...)}
	return NewCachedUserRepository(inner, client, time.Minute, testutil.NewMockLogger()), inner, mr
}

func TestCachedUserRepository_ReadThrough(t *testing.T) {
	u := testutil.NewUser("usr_1", vo.TierPro)
	cached, inner, mr := setupUserCache(t, u)
	ctx := context.Background()

	first, err := cached.GetByID(ctx, "usr_1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, inner.gets)
	assert.True(t, mr.Exists("user:profile:usr_1"))

	second, err := cached.GetByID(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read served from cache")
	assert.Equal(t, vo.TierPro, second.Tier())
	assert.Equal(t, u.Email(), second.Email())
	assert.Equal(t, u.CreatedAt().UnixNano(), second.CreatedAt().UnixNano())

	mr.FastForward(2 * time.Minute)
	_, err = cached.GetByID(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.gets, "expired entry reloads")
}

func TestCachedUserRepository_UpdateInvalidates(t *testing.T) {
	u := testutil.NewUser("usr_1", vo.TierTrial)
	cached, inner, mr := setupUserCache(t, u)
	ctx := context.Background()

	_, err := cached.GetByID(ctx, "usr_1")
	require.NoError(t, err)

	changed := testutil.NewUser("usr_1", vo.TierFamily)
	require.NoError(t, cached.Update(ctx, changed))
	assert.False(t, mr.Exists("user:profile:usr_1"))

	got, err := cached.GetByID(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, vo.TierFamily, got.Tier())
	assert.Equal(t, 2, inner.gets)
}

func TestCachedUserRepository_NullMarker(t *testing.T) {
	cached, inner, mr := setupUserCache(t)
	ctx := context.Background()

	got, err := cached.GetByID(ctx, "usr_new")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = cached.GetByID(ctx, "usr_new")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, inner.gets)

	created := testutil.NewUser("usr_new", vo.TierTrial)
	require.NoError(t, cached.Create(ctx, created))
	assert.False(t, mr.Exists("user:profile:usr_new"))

	got, err = cached.GetByID(ctx, "usr_new")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestCachedUserRepository_RedisDownFallsBack(t *testing.T) {
	u := testutil.NewUser("usr_1", vo.TierPro)
	cached, inner, mr := setupUserCache(t, u)
	mr.Close()

	got, err := cached.GetByID(context.Background(), "usr_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedUserRepository_WriteSucceedsWhenRedisDown(t *testing.T) {
	u := testutil.NewUser("usr_1", vo.TierPro)
	cached, inner, mr := setupUserCache(t, u)
	ctx := context.Background()
	mr.Close()

	_, err := u.ChangeTier(vo.TierFamily)
	require.NoError(t, err)
	require.NoError(t, cached.Update(ctx, u))

	stored, err := inner.MockUserRepository.GetByID(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, vo.TierFamily, stored.Tier())
	assert.Equal(t, 1, inner.Updates)

	require.NoError(t, cached.Create(ctx, testutil.NewUser("usr_2", vo.TierTrial)))
}
