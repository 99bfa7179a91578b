package repository

import (
	"context"
	"errors"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrUsernameExists   = errors.New("username already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrFollowNotFound   = errors.New("follow relationship not found")
	ErrAlreadyFollowing = errors.New("already following")
	// ErrLikeConflict signals that a concurrent toggle for the same
	// (post, username) pair won the race. Callers retry.
	ErrLikeConflict         = errors.New("concurrent like toggle conflict")
	ErrNotificationNotFound = errors.New("notification not found")
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// SearchByUsername returns users whose username contains the query,
	// case-insensitively, in store iteration order.
	SearchByUsername(ctx context.Context, query string, limit int) ([]*domain.User, error)
}

// FollowRepository defines persistence operations for follow edges. One row
// is the whole logical edge; both directional views read the same rows, so
// edge symmetry cannot be violated by a partial write.
type FollowRepository interface {
	Follow(ctx context.Context, follower, target string) error
	Unfollow(ctx context.Context, follower, target string) error
	IsFollowing(ctx context.Context, follower, target string) (bool, error)
	Following(ctx context.Context, username string) ([]string, error)
	Followers(ctx context.Context, username string) ([]string, error)
	FollowersCount(ctx context.Context, username string) (int64, error)
}

// PostRepository defines persistence operations for posts and their
// engagement rows. ToggleLike and AddComment are reached only through the
// engagement service; no raw field setters are exposed to other callers.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// ListAll returns every post, newest first (created_at DESC, id DESC).
	ListAll(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, username string) ([]*domain.Post, error)
	// ListLikedBy returns posts whose like-set contains username, newest first.
	ListLikedBy(ctx context.Context, username string) ([]*domain.Post, error)
	// SearchByCaption returns posts whose caption contains the query,
	// case-insensitively, newest first.
	SearchByCaption(ctx context.Context, query string, limit int) ([]*domain.Post, error)
	// ToggleLike flips username's membership in the post's like-set against
	// current stored state, inside one transaction. Returns the new
	// membership and the post's total like count as seen by the toggling
	// transaction; concurrent toggles may see a lower total than the final
	// stored set.
	ToggleLike(ctx context.Context, postID, username string) (liked bool, total int64, err error)
	// AddComment appends text to the post's ordered comment sequence.
	AddComment(ctx context.Context, postID, text string) error
}

// StoryRepository defines persistence operations for stories. Expired rows
// stay in storage; visibility is a read-time concern of the feed composer.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	// ListByAuthors returns all stories authored by any of the given
	// usernames, newest first, including expired ones.
	ListByAuthors(ctx context.Context, usernames []string) ([]*domain.Story, error)
}

// NotificationRepository defines persistence operations for the notification
// inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// List returns recipient's notifications newest first. filter is "",
	// "all", "unread", or a notification type.
	List(ctx context.Context, recipient, filter string, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, recipient string) (int64, error)
	MarkRead(ctx context.Context, recipient, id string) error
	MarkAllRead(ctx context.Context, recipient string) error
}
