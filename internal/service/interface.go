package service

import (
	"context"

	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
)

var (
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrPostNotFound       = apperr.NotFound("post not found")
	ErrSelfFollow         = apperr.NoOp("cannot follow yourself")
	ErrEmailTaken         = apperr.Conflict("email already exists")
	ErrUsernameTaken      = apperr.Conflict("username already exists")
	ErrInvalidCredentials = apperr.New(apperr.CodeUnauthenticated, "invalid credentials")
	ErrEmptyQuery         = apperr.InvalidArg("query is required")
	ErrEmptyComment       = apperr.InvalidArg("comment text is required")
	ErrMissingUsername    = apperr.InvalidArg("username is required")
	ErrMissingPostID      = apperr.InvalidArg("post id is required")
	ErrMissingCaption     = apperr.InvalidArg("caption is required")
	ErrMissingImage       = apperr.InvalidArg("image is required")
	ErrMissingStory       = apperr.InvalidArg("story media is required")
	// ErrLikeConflict reports a lost race between two toggles of the same
	// (post, username) pair. The caller retries; it is never swallowed here.
	ErrLikeConflict = apperr.Conflict("like toggle conflicted with a concurrent request, retry")
)

// UserService covers account creation, credential checks, and profile reads.
type UserService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.Profile, error)
	Signin(ctx context.Context, req *domain.SigninRequest) (*domain.Profile, error)
	// GetProfile returns the public profile with follower/following views
	// resolved from the follow graph.
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
}

// SocialGraphService owns the follow graph. Follow and Unfollow are
// idempotent: repeating a call that already took effect reports changed=false
// and leaves the graph untouched.
type SocialGraphService interface {
	// Follow creates the edge follower→target. Self-follow is a detectable
	// no-op (ErrSelfFollow, code NO_OP); following an already-followed user
	// returns (false, nil).
	Follow(ctx context.Context, follower, target string) (changed bool, err error)
	Unfollow(ctx context.Context, follower, target string) (changed bool, err error)
	IsFollowing(ctx context.Context, follower, target string) (bool, error)
	// FollowersCount serves from the Redis cache when warm and falls back to
	// the database, repopulating the cache.
	FollowersCount(ctx context.Context, username string) (int64, error)
}

// ContentService creates and reads posts and stories. Engagement fields are
// mutable only through EngagementService.
type ContentService interface {
	CreatePost(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error)
	CreateStory(ctx context.Context, req *domain.CreateStoryRequest) (*domain.Story, error)
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	ListPostsByAuthor(ctx context.Context, username string) ([]*domain.Post, error)
	ListPostsLikedBy(ctx context.Context, username string) ([]*domain.Post, error)
}

// FeedService composes per-viewer feeds at read time from current store
// state. It holds no state of its own and performs no retries; store-read
// failures surface as UNAVAILABLE.
type FeedService interface {
	// ComposeStoryFeed returns the viewer's own active stories first, then
	// followed authors' active stories, reverse-chronological within each
	// group. An unknown viewer or empty following yields own stories only.
	ComposeStoryFeed(ctx context.Context, viewer string) (*domain.StoryFeed, error)
	// ComposePostFeed returns the global post feed, newest first.
	ComposePostFeed(ctx context.Context) ([]*domain.Post, error)
}

// EngagementService applies like and comment mutations with read-modify-write
// against current stored state, serialized per post.
type EngagementService interface {
	ToggleLike(ctx context.Context, postID, username string) (*domain.LikeResult, error)
	AddComment(ctx context.Context, postID, username, text string) (comment string, err error)
}

// SearchService is an ad hoc case-insensitive substring match over usernames
// and captions. No ranking; a linear scan over the primary stores.
type SearchService interface {
	Search(ctx context.Context, query string) (*domain.SearchResponse, error)
}

// NotificationService reads and mutates the persisted notification inbox.
type NotificationService interface {
	List(ctx context.Context, recipient string, filter domain.NotificationFilter) (*domain.NotificationList, error)
	MarkRead(ctx context.Context, recipient, id string) (*domain.NotificationList, error)
	MarkAllRead(ctx context.Context, recipient string) error
}
