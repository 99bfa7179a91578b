package events

import (
	"context"
	"time"
)

// Event types emitted for the notification fan-out collaborator.
const (
	TypeFollowed     = "followed"
	TypeLikeAdded    = "like_added"
	TypeLikeRemoved  = "like_removed"
	TypeCommentAdded = "comment_added"
)

// Event is one engagement event. Actor performed Type against Target (a
// username); PostID is set for post-scoped events.
type Event struct {
	Type      string    `json:"type"`
	Actor     string    `json:"actor"`
	Target    string    `json:"target"`
	PostID    string    `json:"post_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes engagement events. Publishing is best-effort from the
// core's point of view: a failed publish never fails the mutation that
// triggered it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

// Ensure interface is satisfied at compile time.
var _ Publisher = NoopPublisher{}
