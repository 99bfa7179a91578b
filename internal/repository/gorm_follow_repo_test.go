package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_FollowUnfollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	t.Run("follow creates edge visible from both sides", func(t *testing.T) {
		require.NoError(t, repo.Follow(ctx, "alice", "bob"))

		following, err := repo.Following(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, following)

		followers, err := repo.Followers(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, followers)

		ok, err := repo.IsFollowing(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate follow reports ErrAlreadyFollowing", func(t *testing.T) {
		err := repo.Follow(ctx, "alice", "bob")
		assert.ErrorIs(t, err, ErrAlreadyFollowing)

		// graph is unchanged, no doubled edge
		followers, err := repo.Followers(ctx, "bob")
		require.NoError(t, err)
		assert.Len(t, followers, 1)
	})

	t.Run("reverse direction is an independent edge", func(t *testing.T) {
		ok, err := repo.IsFollowing(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repo.Follow(ctx, "bob", "alice"))

		ok, err = repo.IsFollowing(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unfollow removes the edge from both views", func(t *testing.T) {
		require.NoError(t, repo.Unfollow(ctx, "alice", "bob"))

		following, err := repo.Following(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, following)

		followers, err := repo.Followers(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, followers)

		// bob -> alice edge untouched
		ok, err := repo.IsFollowing(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unfollow of a missing edge reports ErrFollowNotFound", func(t *testing.T) {
		err := repo.Unfollow(ctx, "alice", "bob")
		assert.ErrorIs(t, err, ErrFollowNotFound)
	})
}

func TestFollowRepository_FollowersCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	count, err := repo.FollowersCount(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Follow(ctx, "alice", "carol"))
	require.NoError(t, repo.Follow(ctx, "bob", "carol"))
	require.NoError(t, repo.Follow(ctx, "carol", "alice"))

	count, err = repo.FollowersCount(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Unfollow(ctx, "bob", "carol"))

	count, err = repo.FollowersCount(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
