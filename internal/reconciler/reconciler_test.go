package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinash-a11y/insta-clone/internal/config"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/internal/store"
)

// fakeFollowStore records the store interactions one reconcile pass makes.
type fakeFollowStore struct {
	mu      sync.Mutex
	hotKeys []string
	counts  map[string]int64
	resets  int
}

func newFakeFollowStore(hotKeys ...string) *fakeFollowStore {
	return &fakeFollowStore{hotKeys: hotKeys, counts: make(map[string]int64)}
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

func (f *fakeFollowStore) CondIncrFollowersCount(context.Context, string) error { return nil }

func (f *fakeFollowStore) CondDecrFollowersCount(context.Context, string) error { return nil }

func (f *fakeFollowStore) RecordAccess(context.Context, string) error { return nil }

func (f *fakeFollowStore) GetTopHotKeys(_ context.Context, n int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int64(len(f.hotKeys)) > n {
		return f.hotKeys[:n], nil
	}
	return f.hotKeys, nil
}

func (f *fakeFollowStore) ResetHotKeyScores(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.hotKeys = nil
	return nil
}

func (f *fakeFollowStore) Close() error { return nil }

var _ store.FollowStore = (*fakeFollowStore)(nil)

// fakeFollowRepo serves follower counts from a fixed map.
type fakeFollowRepo struct {
	counts map[string]int64
}

func (f *fakeFollowRepo) Follow(context.Context, string, string) error   { return nil }
func (f *fakeFollowRepo) Unfollow(context.Context, string, string) error { return nil }

func (f *fakeFollowRepo) IsFollowing(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeFollowRepo) Following(context.Context, string) ([]string, error) { return nil, nil }
func (f *fakeFollowRepo) Followers(context.Context, string) ([]string, error) { return nil, nil }

func (f *fakeFollowRepo) FollowersCount(_ context.Context, username string) (int64, error) {
	return f.counts[username], nil
}

var _ repository.FollowRepository = (*fakeFollowRepo)(nil)

func TestReconcileSyncsHotKeys(t *testing.T) {
	followStore := newFakeFollowStore("alice", "bob")
	repo := &fakeFollowRepo{counts: map[string]int64{"alice": 3, "bob": 1}}

	r := New(followStore, repo, config.ReconcilerConfig{Interval: time.Minute, TopN: 10})
	r.reconcile(context.Background())

	count, ok, err := followStore.GetFollowersCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), count)

	count, _, err = followStore.GetFollowersCount(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, 1, followStore.resets)
}

func TestReconcileNoHotKeys(t *testing.T) {
	followStore := newFakeFollowStore()
	r := New(followStore, &fakeFollowRepo{counts: map[string]int64{}}, config.ReconcilerConfig{TopN: 10})

	r.reconcile(context.Background())

	// nothing accessed, nothing reset
	assert.Equal(t, 0, followStore.resets)
	assert.Empty(t, followStore.counts)
}

func TestReconcilerStartStop(t *testing.T) {
	followStore := newFakeFollowStore("alice")
	repo := &fakeFollowRepo{counts: map[string]int64{"alice": 2}}

	r := New(followStore, repo, config.ReconcilerConfig{Interval: 5 * time.Millisecond, TopN: 10})
	r.Start(context.Background())

	require.Eventually(t, func() bool {
		_, ok, _ := followStore.GetFollowersCount(context.Background(), "alice")
		return ok
	}, time.Second, 5*time.Millisecond, "reconciler never ticked")

	r.Stop()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}

func TestReconcilerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r := New(newFakeFollowStore(), &fakeFollowRepo{}, config.ReconcilerConfig{Interval: time.Minute})
	r.Start(ctx)

	cancel()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("reconciler did not exit on context cancellation")
	}
}
