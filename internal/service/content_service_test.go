package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/events"
	"github.com/avinash-a11y/insta-clone/internal/repository"
)

func newContentFixture(t *testing.T) (ContentService, EngagementService) {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewGormUserRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	storyRepo := repository.NewGormStoryRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	seedUser(t, userRepo, "alice")
	seedUser(t, userRepo, "bob")

	content := NewContentService(userRepo, postRepo, storyRepo)
	engagement := NewEngagementService(postRepo, userRepo, notificationRepo, events.NoopPublisher{})
	return content, engagement
}

func TestContentService_CreatePost(t *testing.T) {
	content, _ := newContentFixture(t)
	ctx := context.Background()

	t.Run("creates with empty engagement", func(t *testing.T) {
		post, err := content.CreatePost(ctx, &domain.CreatePostRequest{
			Username: "alice",
			Image:    "data:image/png;base64,xxx",
			Caption:  "hello world",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Comments)

		got, err := content.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello world", got.Caption)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := content.CreatePost(ctx, &domain.CreatePostRequest{Image: "img", Caption: "c"})
		assert.ErrorIs(t, err, ErrMissingUsername)

		_, err = content.CreatePost(ctx, &domain.CreatePostRequest{Username: "alice", Caption: "c"})
		assert.ErrorIs(t, err, ErrMissingImage)

		_, err = content.CreatePost(ctx, &domain.CreatePostRequest{Username: "alice", Image: "img"})
		assert.ErrorIs(t, err, ErrMissingCaption)

		_, err = content.CreatePost(ctx, &domain.CreatePostRequest{Username: "nobody", Image: "img", Caption: "c"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestContentService_CreateStory(t *testing.T) {
	content, _ := newContentFixture(t)
	ctx := context.Background()

	story, err := content.CreateStory(ctx, &domain.CreateStoryRequest{
		Username: "alice",
		Story:    "data:image/png;base64,xxx",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, story.ID)
	assert.Equal(t, story.CreatedAt.Add(domain.StoryTTL), story.ExpiresAt)

	_, err = content.CreateStory(ctx, &domain.CreateStoryRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrMissingStory)

	_, err = content.CreateStory(ctx, &domain.CreateStoryRequest{Username: "nobody", Story: "media"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestContentService_ListPostsLikedBy(t *testing.T) {
	content, engagement := newContentFixture(t)
	ctx := context.Background()

	post, err := content.CreatePost(ctx, &domain.CreatePostRequest{
		Username: "alice",
		Image:    "img",
		Caption:  "likeable",
	})
	require.NoError(t, err)

	liked, err := content.ListPostsLikedBy(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, liked)

	_, err = engagement.ToggleLike(ctx, post.ID, "bob")
	require.NoError(t, err)

	liked, err = content.ListPostsLikedBy(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, post.ID, liked[0].ID)
	assert.Equal(t, []string{"bob"}, liked[0].Likes)
}
