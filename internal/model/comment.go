package model

import (
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
)

// Comment is a user-submitted comment on an event, gated by moderation.
type Comment struct {
	ID              string        `json:"id"`
	EventID         string        `json:"eventId"`
	AuthorID        string        `json:"authorId"`
	Text            string        `json:"text"`
	Status          CommentStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	CreatedAt       DateTime      `json:"createdAt"`
	UpdatedAt       DateTime      `json:"updatedAt"`
}

// ApplyEdit replaces the text and sends the comment back to moderation.
// Any prior rejection reason is cleared; this is the only path back to
// PENDING from a terminal moderation status.
func (c *Comment) ApplyEdit(text string, now time.Time) {
	c.Text = text
	c.Status = CommentPending
	c.RejectionReason = ""
	c.UpdatedAt = DateTime(now.Truncate(time.Second))
}

// Approve moves a pending comment to APPROVED.
func (c *Comment) Approve(now time.Time) error {
	if !c.Status.CanTransition(CommentApproved) {
		return apperr.Conflict("comment has already been processed")
	}
	c.Status = CommentApproved
	c.UpdatedAt = DateTime(now.Truncate(time.Second))
	return nil
}

// Reject moves a pending comment to REJECTED and records the reason.
func (c *Comment) Reject(reason string, now time.Time) error {
	if !c.Status.CanTransition(CommentRejected) {
		return apperr.Conflict("comment has already been processed")
	}
	c.Status = CommentRejected
	c.RejectionReason = reason
	c.UpdatedAt = DateTime(now.Truncate(time.Second))
	return nil
}

// NewComment is the payload for creating or editing a comment.
type NewComment struct {
	Text string `json:"text"`
}

// RejectComment is the payload for a moderator rejection.
type RejectComment struct {
	Reason string `json:"reason"`
}
