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

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category; names are unique.
func (r *CategoryRepository) Create(ctx context.Context, req model.NewCategory) (*model.Category, error) {
	taken, err := r.nameTaken(ctx, req.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("category name must be unique")
	}

	cat := &model.Category{ID: uuid.New().String(), Name: req.Name}
	if _, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, cat.ID, cat.Name,
	); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return cat, nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, id string, req model.NewCategory) (*model.Category, error) {
	cat, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat.Name != req.Name {
		taken, err := r.nameTaken(ctx, req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("category name must be unique")
		}
	}
	if _, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2`, req.Name, id,
	); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	cat.Name = req.Name
	return cat, nil
}

// Delete removes a category; categories with events cannot be deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	var hasEvents bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`, id,
	).Scan(&hasEvents)
	if err != nil {
		return fmt.Errorf("check category events: %w", err)
	}
	if hasEvents {
		return apperr.Conflict("category has events attached")
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// List returns categories paginated by from/size.
func (r *CategoryRepository) List(ctx context.Context, from, size int) ([]model.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM categories ORDER BY name LIMIT $1 OFFSET $2`, size, from,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	cats := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetByID returns a single category.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("category with id %s not found", id)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) nameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return taken, nil
}
