package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avinash-a11y/insta-clone/internal/cache"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/internal/store"
)

// newTestDB opens an in-memory SQLite database pinned to one connection so
// all queries see the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.UserModel{},
		&domain.FollowModel{},
		&domain.PostModel{},
		&domain.LikeModel{},
		&domain.CommentModel{},
		&domain.StoryModel{},
		&domain.NotificationModel{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func seedUser(t *testing.T, repo repository.UserRepository, username string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}))
}

// fakeFollowStore is an in-memory stand-in for the Redis follow store.
type fakeFollowStore struct {
	mu       sync.Mutex
	counts   map[string]int64
	accesses map[string]int
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{
		counts:   make(map[string]int64),
		accesses: make(map[string]int),
	}
}

func (f *fakeFollowStore) GetFollowersCount(_ context.Context, username string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.counts[username]
	return count, ok, nil
}

func (f *fakeFollowStore) SetFollowersCount(_ context.Context, username string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[username] = count
	return nil
}

func (f *fakeFollowStore) CondIncrFollowersCount(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.counts[username]; ok {
		f.counts[username]++
	}
	return nil
}

func (f *fakeFollowStore) CondDecrFollowersCount(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if count, ok := f.counts[username]; ok && count > 0 {
		f.counts[username]--
	}
	return nil
}

func (f *fakeFollowStore) RecordAccess(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accesses[username]++
	return nil
}

func (f *fakeFollowStore) GetTopHotKeys(_ context.Context, n int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.accesses))
	for k := range f.accesses {
		keys = append(keys, k)
		if int64(len(keys)) >= n {
			break
		}
	}
	return keys, nil
}

func (f *fakeFollowStore) ResetHotKeyScores(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accesses = make(map[string]int)
	return nil
}

func (f *fakeFollowStore) Close() error { return nil }

var _ store.FollowStore = (*fakeFollowStore)(nil)

// fakeSearchCache is an in-memory stand-in for the Redis search cache.
type fakeSearchCache struct {
	mu      sync.Mutex
	entries map[string]*domain.SearchResponse
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{entries: make(map[string]*domain.SearchResponse)}
}

func (f *fakeSearchCache) BuildKey(query string) string { return "test:search:" + query }

func (f *fakeSearchCache) Get(_ context.Context, key string) (*domain.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resp, ok := f.entries[key]; ok {
		return resp, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeSearchCache) Set(_ context.Context, key string, result *domain.SearchResponse, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = result
	return nil
}

func (f *fakeSearchCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeSearchCache) Close() error { return nil }

var _ cache.SearchCache = (*fakeSearchCache)(nil)
