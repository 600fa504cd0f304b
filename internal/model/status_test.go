package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventStateTransitions(t *testing.T) {
	assert.True(t, EventPending.CanTransition(EventPublished))
	assert.True(t, EventPending.CanTransition(EventCanceled))
	assert.True(t, EventCanceled.CanTransition(EventPending))

	// Published is terminal.
	assert.False(t, EventPublished.CanTransition(EventPending))
	assert.False(t, EventPublished.CanTransition(EventCanceled))
	assert.False(t, EventCanceled.CanTransition(EventPublished))
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, RequestPending.CanTransition(RequestConfirmed))
	assert.True(t, RequestPending.CanTransition(RequestRejected))
	assert.True(t, RequestPending.CanTransition(RequestCanceled))

	assert.False(t, RequestConfirmed.CanTransition(RequestConfirmed))
	assert.False(t, RequestConfirmed.CanTransition(RequestRejected))
	assert.False(t, RequestRejected.CanTransition(RequestConfirmed))
	assert.False(t, RequestCanceled.CanTransition(RequestPending))
}

func TestCommentStatusTransitions(t *testing.T) {
	assert.True(t, CommentPending.CanTransition(CommentApproved))
	assert.True(t, CommentPending.CanTransition(CommentRejected))

	// Author edits are the only way back into moderation.
	assert.True(t, CommentApproved.CanTransition(CommentPending))
	assert.True(t, CommentRejected.CanTransition(CommentPending))

	assert.False(t, CommentApproved.CanTransition(CommentRejected))
	assert.False(t, CommentRejected.CanTransition(CommentApproved))
}

func TestParseEventState(t *testing.T) {
	s, ok := ParseEventState("PUBLISHED")
	assert.True(t, ok)
	assert.Equal(t, EventPublished, s)

	_, ok = ParseEventState("published")
	assert.False(t, ok)
	_, ok = ParseEventState("UNKNOWN")
	assert.False(t, ok)
}
