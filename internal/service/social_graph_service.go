package service

import (
	"context"
	"errors"
	"time"

	"github.com/avinash-a11y/insta-clone/internal/audit"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/events"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/internal/store"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

// socialGraphService implements SocialGraphService.
type socialGraphService struct {
	users         repository.UserRepository
	follows       repository.FollowRepository
	notifications repository.NotificationRepository
	store         store.FollowStore
	publisher     events.Publisher
}

// NewSocialGraphService creates a new SocialGraphService instance.
func NewSocialGraphService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	notifications repository.NotificationRepository,
	followStore store.FollowStore,
	publisher events.Publisher,
) SocialGraphService {
	return &socialGraphService{
		users:         users,
		follows:       follows,
		notifications: notifications,
		store:         followStore,
		publisher:     publisher,
	}
}

// Follow creates the edge follower→target. A repeated follow of the same
// pair is a successful no-op (changed=false), never a doubled edge.
func (s *socialGraphService) Follow(ctx context.Context, follower, target string) (bool, error) {
	l := pkglog.Ctx(ctx)

	if follower == target {
		return false, ErrSelfFollow
	}

	if err := s.resolveUsers(ctx, follower, target); err != nil {
		return false, err
	}

	if err := s.follows.Follow(ctx, follower, target); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return false, nil
		}
		l.Error().Err(err).
			Str(pkglog.FieldUsername, follower).
			Str(pkglog.FieldTarget, target).
			Msg("failed to follow user")
		return false, apperr.Unavailable("failed to follow user", err)
	}

	// Cache and inbox are secondary effects of the committed edge; their
	// failures are logged, not surfaced.
	if err := s.store.CondIncrFollowersCount(ctx, target); err != nil {
		l.Warn().Err(err).Str(pkglog.FieldTarget, target).Msg("failed to bump cached followers count")
	}

	s.notify(ctx, &domain.Notification{
		Type:      domain.NotificationFollow,
		Recipient: target,
		Actor:     follower,
		Content:   "started following you",
	})
	s.publish(ctx, events.Event{
		Type:      events.TypeFollowed,
		Actor:     follower,
		Target:    target,
		Timestamp: time.Now(),
	})

	audit.LogWithTarget(ctx, audit.ActionFollow, follower, target, "followed user")
	return true, nil
}

// Unfollow removes the edge follower→target. Removing an absent edge is a
// successful no-op.
func (s *socialGraphService) Unfollow(ctx context.Context, follower, target string) (bool, error) {
	l := pkglog.Ctx(ctx)

	if follower == target {
		return false, ErrSelfFollow
	}

	if err := s.resolveUsers(ctx, follower, target); err != nil {
		return false, err
	}

	if err := s.follows.Unfollow(ctx, follower, target); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return false, nil
		}
		l.Error().Err(err).
			Str(pkglog.FieldUsername, follower).
			Str(pkglog.FieldTarget, target).
			Msg("failed to unfollow user")
		return false, apperr.Unavailable("failed to unfollow user", err)
	}

	if err := s.store.CondDecrFollowersCount(ctx, target); err != nil {
		l.Warn().Err(err).Str(pkglog.FieldTarget, target).Msg("failed to drop cached followers count")
	}

	audit.LogWithTarget(ctx, audit.ActionUnfollow, follower, target, "unfollowed user")
	return true, nil
}

// IsFollowing checks whether follower follows target.
func (s *socialGraphService) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	if err := s.resolveUsers(ctx, follower, target); err != nil {
		return false, err
	}

	following, err := s.follows.IsFollowing(ctx, follower, target)
	if err != nil {
		return false, apperr.Unavailable("failed to check follow status", err)
	}
	return following, nil
}

// FollowersCount checks the Redis cache first; on miss it queries the
// database, populates the cache, and records a hot key access.
func (s *socialGraphService) FollowersCount(ctx context.Context, username string) (int64, error) {
	l := pkglog.Ctx(ctx)

	if err := s.store.RecordAccess(ctx, username); err != nil {
		l.Warn().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to record hot key access")
	}

	count, found, err := s.store.GetFollowersCount(ctx, username)
	if err != nil {
		l.Warn().Err(err).Str(pkglog.FieldUsername, username).Msg("redis get followers count failed, falling back to db")
	}
	if found {
		return count, nil
	}

	count, err = s.follows.FollowersCount(ctx, username)
	if err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to get followers count from db")
		return 0, apperr.Unavailable("failed to get followers count", err)
	}

	if err := s.store.SetFollowersCount(ctx, username, count); err != nil {
		l.Warn().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to set followers count in redis")
	}

	return count, nil
}

// resolveUsers verifies both usernames exist.
func (s *socialGraphService) resolveUsers(ctx context.Context, usernames ...string) error {
	for _, u := range usernames {
		if u == "" {
			return ErrMissingUsername
		}
		if _, err := s.users.GetByUsername(ctx, u); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return apperr.Unavailable("failed to resolve user", err)
		}
	}
	return nil
}

func (s *socialGraphService) notify(ctx context.Context, n *domain.Notification) {
	if err := s.notifications.Create(ctx, n); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).
			Str(pkglog.FieldUsername, n.Recipient).
			Msg("failed to write notification")
	}
}

func (s *socialGraphService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).
			Str("event_type", event.Type).
			Msg("failed to publish engagement event")
	}
}

// Ensure interface is satisfied at compile time.
var _ SocialGraphService = (*socialGraphService)(nil)
