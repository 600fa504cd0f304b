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

// CompilationRepository handles persistence for event compilations.
type CompilationRepository struct {
	db *pgxpool.Pool
}

// NewCompilationRepository constructs a CompilationRepository.
func NewCompilationRepository(db *pgxpool.Pool) *CompilationRepository {
	return &CompilationRepository{db: db}
}

// Create inserts a compilation and its event links.
func (r *CompilationRepository) Create(ctx context.Context, title string, pinned bool, eventIDs []string) (*model.Compilation, error) {
	taken, err := r.titleTaken(ctx, title, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("compilation with title %s already exists", title)
	}

	id := uuid.New().String()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`INSERT INTO compilations (id, title, pinned) VALUES ($1, $2, $3)`,
		id, title, pinned,
	); err != nil {
		return nil, fmt.Errorf("insert compilation: %w", err)
	}
	if err = r.replaceEvents(ctx, tx, id, eventIDs); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update patches a compilation; a nil event list keeps existing links.
func (r *CompilationRepository) Update(ctx context.Context, id string, upd model.UpdateCompilation) (*model.Compilation, error) {
	comp, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title != comp.Title {
		taken, err := r.titleTaken(ctx, *upd.Title, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("compilation with title %s already exists", *upd.Title)
		}
		comp.Title = *upd.Title
	}
	if upd.Pinned != nil {
		comp.Pinned = *upd.Pinned
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`UPDATE compilations SET title = $1, pinned = $2 WHERE id = $3`,
		comp.Title, comp.Pinned, id,
	); err != nil {
		return nil, fmt.Errorf("update compilation: %w", err)
	}
	if upd.EventIDs != nil {
		if _, err = tx.Exec(ctx,
			`DELETE FROM compilation_events WHERE compilation_id = $1`, id,
		); err != nil {
			return nil, fmt.Errorf("clear compilation events: %w", err)
		}
		if err = r.replaceEvents(ctx, tx, id, upd.EventIDs); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a compilation and its links.
func (r *CompilationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compilation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("compilation with id %s not found", id)
	}
	return nil
}

// GetByID returns a compilation with its events attached.
func (r *CompilationRepository) GetByID(ctx context.Context, id string) (*model.Compilation, error) {
	var comp model.Compilation
	err := r.db.QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&comp.ID, &comp.Title, &comp.Pinned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("compilation with id %s not found", id)
		}
		return nil, fmt.Errorf("get compilation: %w", err)
	}
	if err := r.attachEvents(ctx, &comp); err != nil {
		return nil, err
	}
	return &comp, nil
}

// List returns compilations, optionally filtered by pinned, paginated.
func (r *CompilationRepository) List(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error) {
	query := `SELECT id, title, pinned FROM compilations`
	args := []any{}
	if pinned != nil {
		query += ` WHERE pinned = $1`
		args = append(args, *pinned)
	}
	query += fmt.Sprintf(` ORDER BY title LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, size, from)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compilations: %w", err)
	}
	defer rows.Close()

	comps := []model.Compilation{}
	for rows.Next() {
		var c model.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, fmt.Errorf("scan compilation: %w", err)
		}
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range comps {
		if err := r.attachEvents(ctx, &comps[i]); err != nil {
			return nil, err
		}
	}
	return comps, nil
}

func (r *CompilationRepository) titleTaken(ctx context.Context, title, excludeID string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM compilations WHERE title = $1 AND id <> $2)`,
		title, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check compilation title: %w", err)
	}
	return taken, nil
}

func (r *CompilationRepository) attachEvents(ctx context.Context, comp *model.Compilation) error {
	rows, err := r.db.Query(ctx,
		eventBase+` JOIN compilation_events ce ON ce.event_id = e.id
		 WHERE ce.compilation_id = $1 ORDER BY e.event_date ASC`,
		comp.ID,
	)
	if err != nil {
		return fmt.Errorf("list compilation events: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return err
	}
	comp.Events = make([]model.EventShort, 0, len(events))
	for i := range events {
		comp.Events = append(comp.Events, events[i].Short())
	}
	return nil
}

func (r *CompilationRepository) replaceEvents(ctx context.Context, tx pgx.Tx, compID string, eventIDs []string) error {
	for _, eventID := range eventIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			compID, eventID,
		); err != nil {
			return fmt.Errorf("link compilation event: %w", err)
		}
	}
	return nil
}
