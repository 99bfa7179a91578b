package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

func TestStoryRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStoryRepository(db)
	ctx := context.Background()

	story := &domain.Story{Username: "alice", Story: "data:image/png;base64,xxx"}
	require.NoError(t, repo.Create(ctx, story))

	assert.NotEmpty(t, story.ID)
	assert.False(t, story.CreatedAt.IsZero())
	assert.Equal(t, story.CreatedAt.Add(domain.StoryTTL), story.ExpiresAt)
}

func TestStoryRepository_ListByAuthors(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStoryRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-3 * time.Hour)
	mk := func(username string, offset time.Duration) *domain.Story {
		s := &domain.Story{Username: username, Story: "media", CreatedAt: base.Add(offset)}
		require.NoError(t, repo.Create(ctx, s))
		return s
	}

	old := mk("alice", 0)
	mid := mk("bob", time.Hour)
	newest := mk("alice", 2*time.Hour)
	mk("carol", 90*time.Minute)

	t.Run("filters by author set, newest first", func(t *testing.T) {
		stories, err := repo.ListByAuthors(ctx, []string{"alice", "bob"})
		require.NoError(t, err)
		require.Len(t, stories, 3)
		assert.Equal(t, newest.ID, stories[0].ID)
		assert.Equal(t, mid.ID, stories[1].ID)
		assert.Equal(t, old.ID, stories[2].ID)
	})

	t.Run("expired rows are still returned", func(t *testing.T) {
		expired := &domain.Story{
			Username:  "alice",
			Story:     "media",
			CreatedAt: time.Now().Add(-48 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, expired))

		stories, err := repo.ListByAuthors(ctx, []string{"alice"})
		require.NoError(t, err)
		require.Len(t, stories, 3)
		assert.Equal(t, expired.ID, stories[2].ID)
	})

	t.Run("empty author set yields empty slice", func(t *testing.T) {
		stories, err := repo.ListByAuthors(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, stories)
	})
}
