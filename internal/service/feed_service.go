package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

// feedService implements FeedService. It owns no persistent state: every
// read recomputes the feed from current store state.
type feedService struct {
	follows repository.FollowRepository
	posts   repository.PostRepository
	stories repository.StoryRepository
	now     func() time.Time
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(
	follows repository.FollowRepository,
	posts repository.PostRepository,
	stories repository.StoryRepository,
) FeedService {
	return &feedService{
		follows: follows,
		posts:   posts,
		stories: stories,
		now:     time.Now,
	}
}

// ComposeStoryFeed merges the viewer's own stories with followed authors'
// stories, drops expired ones at request time, and returns own stories
// first. Within each group the order is reverse-chronological (documented
// choice; the storage order is already newest-first).
func (s *feedService) ComposeStoryFeed(ctx context.Context, viewer string) (*domain.StoryFeed, error) {
	l := pkglog.Ctx(ctx)

	if viewer == "" {
		return nil, ErrMissingUsername
	}

	following, err := s.follows.Following(ctx, viewer)
	if err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, viewer).Msg("failed to resolve following")
		return nil, apperr.Unavailable("failed to compose story feed", err)
	}

	var own, followed []*domain.Story
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		own, err = s.stories.ListByAuthors(gCtx, []string{viewer})
		return err
	})
	g.Go(func() error {
		var err error
		followed, err = s.stories.ListByAuthors(gCtx, following)
		return err
	})

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, viewer).Msg("failed to load stories")
		return nil, apperr.Unavailable("failed to compose story feed", err)
	}

	now := s.now()
	stories := append(domain.ActiveStories(own, now), domain.ActiveStories(followed, now)...)

	if following == nil {
		following = []string{}
	}
	return &domain.StoryFeed{
		Username:  viewer,
		Following: following,
		Stories:   stories,
	}, nil
}

// ComposePostFeed returns the global post feed, newest first.
func (s *feedService) ComposePostFeed(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Msg("failed to load post feed")
		return nil, apperr.Unavailable("failed to compose post feed", err)
	}
	return posts, nil
}

// Ensure interface is satisfied at compile time.
var _ FeedService = (*feedService)(nil)
