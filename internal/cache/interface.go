package cache

import (
	"context"
	"errors"
	"time"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// SearchCache defines the interface for caching search results.
type SearchCache interface {
	BuildKey(query string) string
	Get(ctx context.Context, key string) (*domain.SearchResponse, error)
	Set(ctx context.Context, key string, result *domain.SearchResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
