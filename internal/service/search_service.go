package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/avinash-a11y/insta-clone/internal/cache"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

const (
	searchUserLimit = 50
	searchPostLimit = 20
)

// searchService implements SearchService: a cached, case-insensitive
// substring scan over usernames and captions.
type searchService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	cache    cache.SearchCache
	cacheTTL time.Duration
	sf       singleflight.Group
}

// NewSearchService creates a new SearchService instance.
func NewSearchService(
	users repository.UserRepository,
	posts repository.PostRepository,
	searchCache cache.SearchCache,
	cacheTTL time.Duration,
) SearchService {
	return &searchService{
		users:    users,
		posts:    posts,
		cache:    searchCache,
		cacheTTL: cacheTTL,
	}
}

// Search matches query against usernames and captions. Both legs run in
// parallel; identical concurrent queries collapse onto one lookup.
func (s *searchService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := s.cache.BuildKey(strings.ToLower(query))

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			pkglog.Ctx(ctx).Warn().Err(err).Msg("search cache get error")
		}

		var users []*domain.User
		var posts []*domain.Post

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			users, err = s.users.SearchByUsername(gCtx, query, searchUserLimit)
			return err
		})
		g.Go(func() error {
			var err error
			posts, err = s.posts.SearchByCaption(gCtx, query, searchPostLimit)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, apperr.Unavailable("search failed", err)
		}

		profiles := make([]domain.Profile, 0, len(users))
		for _, u := range users {
			profiles = append(profiles, u.ToProfile())
		}

		resp := &domain.SearchResponse{
			Users: profiles,
			Posts: posts,
			Total: len(profiles) + len(posts),
		}

		s.asyncCacheSet(key, resp)

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.SearchResponse), nil
}

func (s *searchService) asyncCacheSet(key string, resp *domain.SearchResponse) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			pkglog.L().Warn().Err(err).Str("key", key).Msg("search cache set error")
		}
	}()
}

// Ensure interface is satisfied at compile time.
var _ SearchService = (*searchService)(nil)
