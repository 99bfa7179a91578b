package audit

import (
	"context"

	"github.com/avinash-a11y/insta-clone/pkg/log"
)

// Audit actions.
const (
	ActionSignup       = "user.signup"
	ActionSignin       = "user.signin"
	ActionSigninFailed = "user.signin_failed"
	ActionFollow       = "graph.follow"
	ActionUnfollow     = "graph.unfollow"
	ActionCreatePost   = "content.create_post"
	ActionCreateStory  = "content.create_story"
	ActionToggleLike   = "engagement.toggle_like"
	ActionAddComment   = "engagement.add_comment"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, username, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUsername, username).
		Msg(msg)
}

// LogWithTarget emits an audit log naming the entity the action touched.
func LogWithTarget(ctx context.Context, action, username, targetID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUsername, username).
		Str(FieldTargetID, targetID).
		Msg(msg)
}
