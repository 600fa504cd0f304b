package service

import (
	"context"
	"strings"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
)

// UserService orchestrates admin user management.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create registers a new user.
func (s *UserService) Create(ctx context.Context, req model.NewUser) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		return nil, apperr.BadRequest("user name is required")
	}
	if !isValidEmail(req.Email) {
		return nil, apperr.BadRequest("email is not a valid email address")
	}
	return s.users.Create(ctx, req)
}

// List returns users, optionally restricted to ids.
func (s *UserService) List(ctx context.Context, ids []string, from, size int) ([]model.User, error) {
	return s.users.List(ctx, ids, from, size)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// isValidEmail does a basic structural check on the address.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
