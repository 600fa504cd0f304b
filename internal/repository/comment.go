package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository constructs a CommentRepository.
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, event_id, author_id, text, status, rejection_reason, created_at, updated_at`

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	c.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (`+commentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.EventID, c.AuthorID, c.Text, string(c.Status), c.RejectionReason,
		c.CreatedAt.Time(), c.UpdatedAt.Time(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// Update persists the mutable columns of the comment.
func (r *CommentRepository) Update(ctx context.Context, c *model.Comment) error {
	_, err := r.db.Exec(ctx,
		`UPDATE comments SET text = $1, status = $2, rejection_reason = $3, updated_at = $4
		 WHERE id = $5`,
		c.Text, string(c.Status), c.RejectionReason, c.UpdatedAt.Time(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// GetByID returns a single comment.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comment with id %s not found", id)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// GetByIDAndEvent returns a comment scoped to an event.
func (r *CommentRepository) GetByIDAndEvent(ctx context.Context, id, eventID string) (*model.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND event_id = $2`, id, eventID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comment with id %s not found for this event", id)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// ListApprovedByEvent returns the approved comments of an event, paginated.
func (r *CommentRepository) ListApprovedByEvent(ctx context.Context, eventID string, from, size int) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE event_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		eventID, string(model.CommentApproved), size, from,
	)
	if err != nil {
		return nil, fmt.Errorf("list approved comments: %w", err)
	}
	return collectComments(rows)
}

// ListByAuthor returns a user's comments, newest first.
func (r *CommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE author_id = $1 ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments by author: %w", err)
	}
	return collectComments(rows)
}

// ListByStatus returns all comments with the given moderation status.
func (r *CommentRepository) ListByStatus(ctx context.Context, status model.CommentStatus) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE status = $1 ORDER BY created_at ASC`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("list comments by status: %w", err)
	}
	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]model.Comment, error) {
	defer rows.Close()
	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}
