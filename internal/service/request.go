package service

import (
	"context"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
)

// RequestService orchestrates participation requests. The capacity-aware
// admission decisions themselves run inside the repository's row-locked
// transactions; this layer validates identity and input.
type RequestService struct {
	requests *repository.RequestRepository
	events   *repository.EventRepository
	users    *repository.UserRepository
}

// NewRequestService constructs a RequestService with its dependencies.
func NewRequestService(
	requests *repository.RequestRepository,
	events *repository.EventRepository,
	users *repository.UserRepository,
) *RequestService {
	return &RequestService{requests: requests, events: events, users: users}
}

// Create submits a participation request for userID on eventID.
func (s *RequestService) Create(ctx context.Context, userID, eventID string) (*model.Request, error) {
	if eventID == "" {
		return nil, apperr.BadRequest("eventId is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.Create(ctx, eventID, userID)
}

// ListByRequester returns all of the user's requests.
func (s *RequestService) ListByRequester(ctx context.Context, userID string) ([]model.Request, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user with id %s not found", userID)
	}
	return s.requests.ListByRequester(ctx, userID)
}

// ListByEvent returns all requests against one of the organizer's events.
// Foreign events are reported as not found.
func (s *RequestService) ListByEvent(ctx context.Context, userID, eventID string) ([]model.Request, error) {
	event, err := s.events.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.requests.ListByEvent(ctx, event.ID)
}

// ChangeStatus applies the organizer's batch confirm/reject decision.
func (s *RequestService) ChangeStatus(ctx context.Context, userID, eventID string, upd model.StatusUpdate) (*model.StatusUpdateResult, error) {
	if len(upd.RequestIDs) == 0 {
		return nil, apperr.BadRequest("requestIds must not be empty")
	}
	return s.requests.ChangeStatus(ctx, userID, eventID, upd)
}

// Cancel withdraws the user's own request.
func (s *RequestService) Cancel(ctx context.Context, userID, requestID string) (*model.Request, error) {
	return s.requests.Cancel(ctx, requestID, userID)
}
