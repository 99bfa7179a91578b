package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	sentinel := NotFound("user not found")

	wrapped := fmt.Errorf("handler: %w", sentinel)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))

	other := NotFound("post not found")
	assert.NotErrorIs(t, other, sentinel)
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("failed to load profile", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Contains(t, err.Error(), "failed to load profile")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNoOp, CodeOf(NoOp("cannot follow yourself")))
	assert.Equal(t, CodeConflict, CodeOf(Conflict("taken")))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}
