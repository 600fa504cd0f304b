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

// RequestRepository handles persistence for participation requests and owns
// the two admission transactions. Every mutation of an event's
// confirmed_requests counter happens here, under a row-level lock on the
// event, so the counter can never drift from the set of CONFIRMED rows.
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create performs a concurrency-safe request creation.
//
// Two concurrent creations near the capacity boundary must not both pass
// the limit check. SELECT ... FOR UPDATE takes an exclusive row lock on
// the event, so concurrent transactions serialize on the capacity check
// and counter update; a naive read-check-write would let both through.
func (r *RequestRepository) Create(ctx context.Context, eventID, requesterID string) (*model.Request, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		initiatorID       string
		state             string
		participantLimit  int
		requestModeration bool
		confirmed         int
	)
	err = tx.QueryRow(ctx,
		`SELECT initiator_id, state, participant_limit, request_moderation, confirmed_requests
		 FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&initiatorID, &state, &participantLimit, &requestModeration, &confirmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id %s not found", eventID)
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if initiatorID == requesterID {
		err = apperr.Conflict("the initiator cannot request participation in their own event")
		return nil, err
	}
	if model.EventState(state) != model.EventPublished {
		err = apperr.Conflict("cannot participate in an unpublished event")
		return nil, err
	}

	var duplicate bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE event_id = $1 AND requester_id = $2)`,
		eventID, requesterID,
	).Scan(&duplicate)
	if err != nil {
		return nil, fmt.Errorf("check duplicate request: %w", err)
	}
	if duplicate {
		err = apperr.Conflict("a repeat request is not allowed")
		return nil, err
	}

	if participantLimit > 0 && confirmed >= participantLimit {
		err = apperr.Conflict("the participant limit has been reached")
		return nil, err
	}

	req := &model.Request{
		ID:          uuid.New().String(),
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      model.InitialRequestStatus(requestModeration, participantLimit),
		Created:     model.Now(),
	}

	if req.Status == model.RequestConfirmed {
		if _, err = tx.Exec(ctx,
			`UPDATE events SET confirmed_requests = confirmed_requests + 1 WHERE id = $1`,
			eventID,
		); err != nil {
			return nil, fmt.Errorf("increment confirmed_requests: %w", err)
		}
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO requests (id, event_id, requester_id, status, created)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.EventID, req.RequesterID, string(req.Status), req.Created.Time(),
	); err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return req, nil
}

// ChangeStatus adjudicates an organizer's batch confirm/reject decision.
// The whole batch is one transaction serialized on the event row; any
// precondition failure rolls everything back (all-or-nothing). The
// decision rules themselves live in model.AdjudicateBatch.
func (r *RequestRepository) ChangeStatus(ctx context.Context, initiatorID, eventID string, upd model.StatusUpdate) (*model.StatusUpdateResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Ownership check folded into the lock query: a foreign event reads
	// the same as a missing one.
	var event model.Event
	var state string
	err = tx.QueryRow(ctx,
		`SELECT id, participant_limit, request_moderation, state, confirmed_requests
		 FROM events WHERE id = $1 AND initiator_id = $2 FOR UPDATE`,
		eventID, initiatorID,
	).Scan(&event.ID, &event.ParticipantLimit, &event.RequestModeration, &state, &event.ConfirmedRequests)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id %s not found for user %s", eventID, initiatorID)
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	event.State = model.EventState(state)

	// Load batch members preserving the supplied order.
	byID := make(map[string]*model.Request, len(upd.RequestIDs))
	rows, err := tx.Query(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE id = ANY($1) AND event_id = $2`,
		upd.RequestIDs, eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	for rows.Next() {
		var req *model.Request
		req, err = scanRequest(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan request: %w", err)
		}
		byID[req.ID] = req
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}

	requests := make([]*model.Request, 0, len(upd.RequestIDs))
	for _, id := range upd.RequestIDs {
		req, ok := byID[id]
		if !ok {
			err = apperr.NotFound("request with id %s not found", id)
			return nil, err
		}
		requests = append(requests, req)
	}

	var result *model.StatusUpdateResult
	result, err = model.AdjudicateBatch(&event, requests, upd.Status)
	if err != nil {
		return nil, err
	}

	for _, req := range requests {
		if _, err = tx.Exec(ctx,
			`UPDATE requests SET status = $1 WHERE id = $2`,
			string(req.Status), req.ID,
		); err != nil {
			return nil, fmt.Errorf("update request status: %w", err)
		}
	}
	if _, err = tx.Exec(ctx,
		`UPDATE events SET confirmed_requests = $1 WHERE id = $2`,
		event.ConfirmedRequests, event.ID,
	); err != nil {
		return nil, fmt.Errorf("update confirmed_requests: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return result, nil
}

// Cancel sets the requester's own request to CANCELED, from any status.
// The confirmed counter is intentionally left untouched: whether a
// cancelled confirmed seat frees capacity is an unresolved product
// question, so the source behaviour is preserved.
func (r *RequestRepository) Cancel(ctx context.Context, requestID, requesterID string) (*model.Request, error) {
	req, err := scanRequest(r.db.QueryRow(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE id = $1 AND requester_id = $2`,
		requestID, requesterID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("request with id %s not found", requestID)
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	req.Status = model.RequestCanceled
	if _, err := r.db.Exec(ctx,
		`UPDATE requests SET status = $1 WHERE id = $2`,
		string(req.Status), req.ID,
	); err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	return req, nil
}

// ListByEvent returns all requests for an event, oldest first.
func (r *RequestRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE event_id = $1 ORDER BY created ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list requests by event: %w", err)
	}
	return collectRequests(rows)
}

// ListByRequester returns all of a user's requests, oldest first.
func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]model.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE requester_id = $1 ORDER BY created ASC`,
		requesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list requests by requester: %w", err)
	}
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]model.Request, error) {
	defer rows.Close()
	requests := []model.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
