package model

import (
	"testing"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentApproveReject(t *testing.T) {
	now := time.Now()

	c := &Comment{Status: CommentPending}
	require.NoError(t, c.Approve(now))
	assert.Equal(t, CommentApproved, c.Status)

	// Already processed in either direction.
	err := c.Approve(now)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	err = c.Reject("spam", now)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestCommentReject(t *testing.T) {
	now := time.Now()

	c := &Comment{Status: CommentPending}
	require.NoError(t, c.Reject("off topic", now))
	assert.Equal(t, CommentRejected, c.Status)
	assert.Equal(t, "off topic", c.RejectionReason)
}

func TestCommentApplyEdit_ResetsModeration(t *testing.T) {
	now := time.Now()

	c := &Comment{Status: CommentRejected, Text: "original", RejectionReason: "spam"}
	c.ApplyEdit("revised", now)

	assert.Equal(t, "revised", c.Text)
	assert.Equal(t, CommentPending, c.Status)
	assert.Empty(t, c.RejectionReason)

	// An approved comment also goes back through moderation on edit.
	c = &Comment{Status: CommentApproved, Text: "fine"}
	c.ApplyEdit("still fine", now)
	assert.Equal(t, CommentPending, c.Status)
}
