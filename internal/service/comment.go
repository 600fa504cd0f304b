package service

import (
	"context"
	"strings"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
)

// CommentService orchestrates comment creation and moderation.
type CommentService struct {
	comments *repository.CommentRepository
	events   *repository.EventRepository
	users    *repository.UserRepository
}

// NewCommentService constructs a CommentService with its dependencies.
func NewCommentService(
	comments *repository.CommentRepository,
	events *repository.EventRepository,
	users *repository.UserRepository,
) *CommentService {
	return &CommentService{comments: comments, events: events, users: users}
}

// Add creates a comment in PENDING moderation status.
func (s *CommentService) Add(ctx context.Context, userID, eventID string, req model.NewComment) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.BadRequest("comment text is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	now := model.Now()
	comment := &model.Comment{
		EventID:   eventID,
		AuthorID:  userID,
		Text:      text,
		Status:    model.CommentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.comments.Create(ctx, comment)
}

// Update lets the author edit their comment; the edit resets moderation to
// PENDING and clears any rejection reason.
func (s *CommentService) Update(ctx context.Context, userID, commentID string, req model.NewComment) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.BadRequest("comment text is required")
	}
	comment, err := s.ownComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	comment.ApplyEdit(text, time.Now())
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the author's own comment.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	if _, err := s.ownComment(ctx, userID, commentID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

// ListByAuthor returns the user's comments.
func (s *CommentService) ListByAuthor(ctx context.Context, userID string) ([]model.Comment, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user with id %s not found", userID)
	}
	return s.comments.ListByAuthor(ctx, userID)
}

// PublishedByEvent returns the approved comments of an event.
func (s *CommentService) PublishedByEvent(ctx context.Context, eventID string, from, size int) ([]model.Comment, error) {
	return s.comments.ListApprovedByEvent(ctx, eventID, from, size)
}

// PublishedByID returns one approved comment; anything else is not found.
func (s *CommentService) PublishedByID(ctx context.Context, eventID, commentID string) (*model.Comment, error) {
	comment, err := s.comments.GetByIDAndEvent(ctx, commentID, eventID)
	if err != nil {
		return nil, err
	}
	if comment.Status != model.CommentApproved {
		return nil, apperr.NotFound("comment is not published")
	}
	return comment, nil
}

// Pending returns all comments awaiting moderation.
func (s *CommentService) Pending(ctx context.Context) ([]model.Comment, error) {
	return s.comments.ListByStatus(ctx, model.CommentPending)
}

// Approve publishes a pending comment.
func (s *CommentService) Approve(ctx context.Context, commentID string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := comment.Approve(time.Now()); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Reject declines a pending comment with a reason.
func (s *CommentService) Reject(ctx context.Context, commentID, reason string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := comment.Reject(reason, time.Now()); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ownComment loads a comment and enforces authorship. A foreign comment is
// a conflict, not a permission error; that status choice is part of the
// API contract.
func (s *CommentService) ownComment(ctx context.Context, userID, commentID string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, apperr.Conflict("user is not the author of the comment")
	}
	return comment, nil
}
