package service

import (
	"context"
	"strings"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
)

// CategoryService orchestrates category management.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, req model.NewCategory) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperr.BadRequest("category name is required")
	}
	return s.categories.Create(ctx, req)
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id string, req model.NewCategory) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperr.BadRequest("category name is required")
	}
	return s.categories.Update(ctx, id, req)
}

// Delete removes a category without events.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// List returns categories paginated.
func (s *CategoryService) List(ctx context.Context, from, size int) ([]model.Category, error) {
	return s.categories.List(ctx, from, size)
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}
