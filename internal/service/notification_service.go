package service

import (
	"context"
	"errors"

	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

var errNotificationNotFound = apperr.NotFound("notification not found")

// notificationService implements NotificationService over the persisted
// inbox.
type notificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

// List returns recipient's notifications, newest first, with the unread
// count.
func (s *notificationService) List(ctx context.Context, recipient string, filter domain.NotificationFilter) (*domain.NotificationList, error) {
	if recipient == "" {
		return nil, ErrMissingUsername
	}

	notifications, err := s.notifications.List(ctx, recipient, filter.Filter, filter.Limit)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Str(pkglog.FieldUsername, recipient).Msg("failed to list notifications")
		return nil, apperr.Unavailable("failed to list notifications", err)
	}

	unread, err := s.notifications.UnreadCount(ctx, recipient)
	if err != nil {
		return nil, apperr.Unavailable("failed to count unread notifications", err)
	}

	return &domain.NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one notification as read and returns the refreshed list.
func (s *notificationService) MarkRead(ctx context.Context, recipient, id string) (*domain.NotificationList, error) {
	if recipient == "" {
		return nil, ErrMissingUsername
	}
	if id == "" {
		return nil, apperr.InvalidArg("notification id is required")
	}

	if err := s.notifications.MarkRead(ctx, recipient, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, errNotificationNotFound
		}
		return nil, apperr.Unavailable("failed to mark notification read", err)
	}

	return s.List(ctx, recipient, domain.NotificationFilter{})
}

// MarkAllRead marks every unread notification for recipient as read.
func (s *notificationService) MarkAllRead(ctx context.Context, recipient string) error {
	if recipient == "" {
		return ErrMissingUsername
	}

	if err := s.notifications.MarkAllRead(ctx, recipient); err != nil {
		return apperr.Unavailable("failed to mark notifications read", err)
	}
	return nil
}

// Ensure interface is satisfied at compile time.
var _ NotificationService = (*notificationService)(nil)
