package service

import (
	"context"
	"errors"

	"github.com/avinash-a11y/insta-clone/internal/audit"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

// contentService implements ContentService.
type contentService struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	stories repository.StoryRepository
}

// NewContentService creates a new ContentService instance.
func NewContentService(
	users repository.UserRepository,
	posts repository.PostRepository,
	stories repository.StoryRepository,
) ContentService {
	return &contentService{
		users:   users,
		posts:   posts,
		stories: stories,
	}
}

// CreatePost publishes a post. Caption and image are required; likes and
// comments start empty.
func (s *contentService) CreatePost(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error) {
	l := pkglog.Ctx(ctx)

	switch {
	case req.Username == "":
		return nil, ErrMissingUsername
	case req.Image == "":
		return nil, ErrMissingImage
	case req.Caption == "":
		return nil, ErrMissingCaption
	}

	if err := s.resolveAuthor(ctx, req.Username); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Username: req.Username,
		Image:    req.Image,
		Caption:  req.Caption,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, req.Username).Msg("failed to create post")
		return nil, apperr.Unavailable("failed to create post", err)
	}

	audit.LogWithTarget(ctx, audit.ActionCreatePost, req.Username, post.ID, "post created")
	return post, nil
}

// CreateStory publishes a story that expires StoryTTL after creation.
func (s *contentService) CreateStory(ctx context.Context, req *domain.CreateStoryRequest) (*domain.Story, error) {
	l := pkglog.Ctx(ctx)

	switch {
	case req.Username == "":
		return nil, ErrMissingUsername
	case req.Story == "":
		return nil, ErrMissingStory
	}

	if err := s.resolveAuthor(ctx, req.Username); err != nil {
		return nil, err
	}

	story := &domain.Story{
		Username: req.Username,
		Story:    req.Story,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, req.Username).Msg("failed to create story")
		return nil, apperr.Unavailable("failed to create story", err)
	}

	audit.LogWithTarget(ctx, audit.ActionCreateStory, req.Username, story.ID, "story created")
	return story, nil
}

// GetPostByID retrieves a post with its engagement attached.
func (s *contentService) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, ErrMissingPostID
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, apperr.Unavailable("failed to load post", err)
	}
	return post, nil
}

// ListPostsByAuthor returns username's posts, newest first.
func (s *contentService) ListPostsByAuthor(ctx context.Context, username string) ([]*domain.Post, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}

	posts, err := s.posts.ListByAuthor(ctx, username)
	if err != nil {
		return nil, apperr.Unavailable("failed to list posts", err)
	}
	return posts, nil
}

// ListPostsLikedBy returns posts whose like-set contains username.
func (s *contentService) ListPostsLikedBy(ctx context.Context, username string) ([]*domain.Post, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}

	posts, err := s.posts.ListLikedBy(ctx, username)
	if err != nil {
		return nil, apperr.Unavailable("failed to list liked posts", err)
	}
	return posts, nil
}

func (s *contentService) resolveAuthor(ctx context.Context, username string) error {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return apperr.Unavailable("failed to resolve author", err)
	}
	return nil
}

// Ensure interface is satisfied at compile time.
var _ ContentService = (*contentService)(nil)
