package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

func newUser(email, username string) *domain.User {
	return &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("create assigns an id", func(t *testing.T) {
		u := newUser("alice@example.com", "alice")
		require.NoError(t, repo.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := repo.Create(ctx, newUser("alice@example.com", "alice2"))
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := repo.Create(ctx, newUser("other@example.com", "alice"))
		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("bob@example.com", "bob")))

	got, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_SearchByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	for _, u := range []*domain.User{
		newUser("anna@example.com", "anna_banana"),
		newUser("annika@example.com", "Annika"),
		newUser("bob@example.com", "bob"),
		newUser("under@example.com", "under_score"),
	} {
		require.NoError(t, repo.Create(ctx, u))
	}

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		users, err := repo.SearchByUsername(ctx, "ANN", 10)
		require.NoError(t, err)
		require.Len(t, users, 2)
	})

	t.Run("underscore in the query matches literally", func(t *testing.T) {
		users, err := repo.SearchByUsername(ctx, "under_", 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "under_score", users[0].Username)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		users, err := repo.SearchByUsername(ctx, "ann", 1)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		users, err := repo.SearchByUsername(ctx, "zzz", 10)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
