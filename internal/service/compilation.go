package service

import (
	"context"
	"strings"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
)

// CompilationService orchestrates curated event compilations.
type CompilationService struct {
	compilations *repository.CompilationRepository
}

// NewCompilationService constructs a CompilationService.
func NewCompilationService(compilations *repository.CompilationRepository) *CompilationService {
	return &CompilationService{compilations: compilations}
}

// Create adds a compilation.
func (s *CompilationService) Create(ctx context.Context, req model.NewCompilation) (*model.Compilation, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, apperr.BadRequest("compilation title is required")
	}
	pinned := req.Pinned != nil && *req.Pinned
	return s.compilations.Create(ctx, req.Title, pinned, req.EventIDs)
}

// Update patches a compilation.
func (s *CompilationService) Update(ctx context.Context, id string, req model.UpdateCompilation) (*model.Compilation, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperr.BadRequest("compilation title must not be blank")
	}
	return s.compilations.Update(ctx, id, req)
}

// Delete removes a compilation.
func (s *CompilationService) Delete(ctx context.Context, id string) error {
	return s.compilations.Delete(ctx, id)
}

// List returns compilations, optionally filtered by pinned.
func (s *CompilationService) List(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error) {
	return s.compilations.List(ctx, pinned, from, size)
}

// Get returns one compilation.
func (s *CompilationService) Get(ctx context.Context, id string) (*model.Compilation, error) {
	return s.compilations.GetByID(ctx, id)
}
