package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	modvo "github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/query"
)

func TestChildProfileRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChildProfileRepository(db, testLogger())
	ctx := context.Background()

	createUser(t, db, "usr_1", "one@example.com")
	profile, err := childprofile.NewChildProfile("cp_1", "usr_1", "Mia", nil, nil, nil)
	require.NoError(t, err)
	created, err := repo.CreateWithinLimit(ctx, profile, 3)
	require.NoError(t, err)
	require.True(t, created)

	t.Run("name key is unique per owner", func(t *testing.T) {
		exists, err := repo.ExistsByNameKey(ctx, "usr_1", childprofile.NameKey("MIA"))
		require.NoError(t, err)
		assert.True(t, exists)

		dup, err := childprofile.NewChildProfile("cp_2", "usr_1", "MIA", nil, nil, nil)
		require.NoError(t, err)
		_, err = repo.CreateWithinLimit(ctx, dup, 3)
		assert.True(t, errors.IsDuplicateError(err))
	})

	t.Run("avatar update", func(t *testing.T) {
		require.NoError(t, profile.SetAvatar("https://cdn.example.com/avatars/cp_1.png"))
		require.NoError(t, repo.UpdateAvatar(ctx, profile))

		got, err := repo.GetByID(ctx, "cp_1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.AvatarURL())
		assert.Equal(t, "https://cdn.example.com/avatars/cp_1.png", *got.AvatarURL())
	})

	t.Run("list count delete", func(t *testing.T) {
		list, err := repo.ListByUser(ctx, "usr_1")
		require.NoError(t, err)
		assert.Len(t, list, 1)

		count, err := repo.CountByUser(ctx, "usr_1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, repo.Delete(ctx, "cp_1"))
		assert.Error(t, repo.Delete(ctx, "cp_1"))

		got, err := repo.GetByID(ctx, "cp_1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestChildProfileRepository_CreateWithinLimitConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChildProfileRepository(db, testLogger())
	ctx := context.Background()
	createUser(t, db, "usr_1", "one@example.com")

	const attempts = 6
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile, err := childprofile.NewChildProfile(fmt.Sprintf("cp_%d", i), "usr_1", fmt.Sprintf("Child %d", i), nil, nil, nil)
			if !assert.NoError(t, err) {
				return
			}
			ok, err := repo.CreateWithinLimit(ctx, profile, 3)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, created)
	count, err := repo.CountByUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestChildProfileRepository_CreateWithinLimitUnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChildProfileRepository(db, testLogger())

	profile, err := childprofile.NewChildProfile("cp_1", "usr_missing", "Mia", nil, nil, nil)
	require.NoError(t, err)

	created, err := repo.CreateWithinLimit(context.Background(), profile, 3)
	assert.Error(t, err)
	assert.False(t, created)
}

func TestStoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoryRepository(db, testLogger())
	ctx := context.Background()

	createUser(t, db, "usr_1", "one@example.com")
	for i := 1; i <= 3; i++ {
		s, err := story.NewStory(fmt.Sprintf("sty_%d", i), "usr_1", nil, fmt.Sprintf("Story %d", i), "a dragon", "Once upon a time")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, s))
	}

	t.Run("paged list", func(t *testing.T) {
		page, total, err := repo.ListByUser(ctx, "usr_1", query.PageFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, page, 2)

		rest, _, err := repo.ListByUser(ctx, "usr_1", query.PageFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("visibility", func(t *testing.T) {
		require.NoError(t, repo.SetVisibility(ctx, "sty_1", story.VisibilityPublic))
		got, err := repo.GetByID(ctx, "sty_1")
		require.NoError(t, err)
		assert.Equal(t, story.VisibilityPublic, got.Visibility())
		assert.Equal(t, "Once upon a time", got.Content())

		assert.Error(t, repo.SetVisibility(ctx, "sty_missing", story.VisibilityPrivate))
	})

	t.Run("count created since", func(t *testing.T) {
		count, err := repo.CountCreatedSince(ctx, time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		none, err := repo.CountCreatedSince(ctx, time.Now().UTC().Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, none)
	})
}

func TestReportRepository(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportRepository(db, testLogger())
	stories := NewStoryRepository(db, testLogger())
	ctx := context.Background()

	createUser(t, db, "usr_1", "one@example.com")
	s, err := story.NewStory("sty_1", "usr_1", nil, "Title", "prompt", "content")
	require.NoError(t, err)
	require.NoError(t, stories.Create(ctx, s))

	report, err := moderation.NewReport("rpt_1", "usr_2", "sty_1", modvo.ReasonScaryContent, "too scary")
	require.NoError(t, err)
	require.NoError(t, reports.Create(ctx, report))

	pending, err := reports.HasPending(ctx, "usr_2", "sty_1")
	require.NoError(t, err)
	assert.True(t, pending)

	count, err := reports.CountByStatus(ctx, modvo.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	t.Run("resolve and survive story deletion", func(t *testing.T) {
		require.NoError(t, report.Resolve("adm_1", modvo.ActionStoryDeleted, nil))
		require.NoError(t, reports.Update(ctx, report))
		require.NoError(t, stories.Delete(ctx, "sty_1"))

		got, err := reports.GetByID(ctx, "rpt_1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, modvo.StatusResolved, got.Status())
		require.NotNil(t, got.ActionTaken())
		assert.Equal(t, modvo.ActionStoryDeleted, *got.ActionTaken())
		require.NotNil(t, got.ReviewerID())
		assert.Equal(t, "adm_1", *got.ReviewerID())

		pending, err := reports.HasPending(ctx, "usr_2", "sty_1")
		require.NoError(t, err)
		assert.False(t, pending)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := modvo.StatusPending
		list, total, err := reports.List(ctx, moderation.ReportFilter{Status: &status})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)

		storyID := "sty_1"
		list, total, err = reports.List(ctx, moderation.ReportFilter{StoryID: &storyID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)
	})
}
