package service

import (
	"context"
	"errors"
	"time"

	"github.com/avinash-a11y/insta-clone/internal/audit"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/events"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

// engagementService implements EngagementService. It is the only path that
// mutates a post's engagement fields.
type engagementService struct {
	posts         repository.PostRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	publisher     events.Publisher
}

// NewEngagementService creates a new EngagementService instance.
func NewEngagementService(
	posts repository.PostRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	publisher events.Publisher,
) EngagementService {
	return &engagementService{
		posts:         posts,
		users:         users,
		notifications: notifications,
		publisher:     publisher,
	}
}

// ToggleLike flips username's membership in the post's like-set relative to
// current stored state and returns the authoritative result. Each call
// inverts membership; two calls restore the original state.
func (s *engagementService) ToggleLike(ctx context.Context, postID, username string) (*domain.LikeResult, error) {
	l := pkglog.Ctx(ctx)

	if postID == "" {
		return nil, ErrMissingPostID
	}
	if username == "" {
		return nil, ErrMissingUsername
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, apperr.Unavailable("failed to load post", err)
	}

	liked, total, err := s.posts.ToggleLike(ctx, postID, username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrLikeConflict):
			return nil, ErrLikeConflict
		}
		l.Error().Err(err).
			Str(pkglog.FieldPostID, postID).
			Str(pkglog.FieldUsername, username).
			Msg("failed to toggle like")
		return nil, apperr.Unavailable("failed to toggle like", err)
	}

	eventType := events.TypeLikeRemoved
	if liked {
		eventType = events.TypeLikeAdded
		if post.Username != username {
			s.notify(ctx, &domain.Notification{
				Type:      domain.NotificationLike,
				Recipient: post.Username,
				Actor:     username,
				PostID:    postID,
				Content:   "liked your photo",
			})
		}
	}
	s.publish(ctx, events.Event{
		Type:      eventType,
		Actor:     username,
		Target:    post.Username,
		PostID:    postID,
		Timestamp: time.Now(),
	})

	audit.LogWithTarget(ctx, audit.ActionToggleLike, username, postID, "like toggled")

	return &domain.LikeResult{Liked: liked, TotalLikes: total}, nil
}

// AddComment appends text to the post's ordered comment sequence. Only the
// text is persisted; the acting username reaches the audit trail and the
// emitted event, not the stored post.
func (s *engagementService) AddComment(ctx context.Context, postID, username, text string) (string, error) {
	l := pkglog.Ctx(ctx)

	if postID == "" {
		return "", ErrMissingPostID
	}
	if username == "" {
		return "", ErrMissingUsername
	}
	if text == "" {
		return "", ErrEmptyComment
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return "", ErrPostNotFound
		}
		return "", apperr.Unavailable("failed to load post", err)
	}

	if err := s.posts.AddComment(ctx, postID, text); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return "", ErrPostNotFound
		}
		l.Error().Err(err).
			Str(pkglog.FieldPostID, postID).
			Str(pkglog.FieldUsername, username).
			Msg("failed to add comment")
		return "", apperr.Unavailable("failed to add comment", err)
	}

	if post.Username != username {
		s.notify(ctx, &domain.Notification{
			Type:      domain.NotificationComment,
			Recipient: post.Username,
			Actor:     username,
			PostID:    postID,
			Content:   "commented: " + text,
		})
	}
	s.publish(ctx, events.Event{
		Type:      events.TypeCommentAdded,
		Actor:     username,
		Target:    post.Username,
		PostID:    postID,
		Timestamp: time.Now(),
	})

	audit.LogWithTarget(ctx, audit.ActionAddComment, username, postID, "comment added")

	return text, nil
}

func (s *engagementService) notify(ctx context.Context, n *domain.Notification) {
	if err := s.notifications.Create(ctx, n); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).
			Str(pkglog.FieldUsername, n.Recipient).
			Msg("failed to write notification")
	}
}

func (s *engagementService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).
			Str("event_type", event.Type).
			Msg("failed to publish engagement event")
	}
}

// Ensure interface is satisfied at compile time.
var _ EngagementService = (*engagementService)(nil)
