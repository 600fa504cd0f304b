package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventBase = `SELECT ` + eventColumns + `
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.initiator_id`

// Create inserts a new event in PENDING state with a zero counter.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	e.State = model.EventPending
	e.ConfirmedRequests = 0
	e.CreatedOn = model.Now()

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, annotation, description, category_id, initiator_id,
			lat, lon, paid, participant_limit, request_moderation, state,
			event_date, created_on, confirmed_requests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.Title, e.Annotation, e.Description, e.Category.ID, e.Initiator.ID,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.EventDate.Time(), e.CreatedOn.Time(), e.ConfirmedRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// Update persists every mutable column of the event.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	var publishedOn *time.Time
	if e.PublishedOn != nil {
		t := e.PublishedOn.Time()
		publishedOn = &t
	}
	_, err := r.db.Exec(ctx,
		`UPDATE events SET title = $1, annotation = $2, description = $3, category_id = $4,
			lat = $5, lon = $6, paid = $7, participant_limit = $8, request_moderation = $9,
			state = $10, event_date = $11, published_on = $12
		 WHERE id = $13`,
		e.Title, e.Annotation, e.Description, e.Category.ID,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.EventDate.Time(), publishedOn, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// GetByID returns a single event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, eventBase+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id %s not found", id)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetByIDAndInitiator returns an event only when it is owned by the given
// user. Unknown and not-owned are indistinguishable on purpose.
func (r *EventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		eventBase+` WHERE e.id = $1 AND e.initiator_id = $2`, id, initiatorID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id %s not found for user %s", id, initiatorID)
		}
		return nil, fmt.Errorf("get event by initiator: %w", err)
	}
	return e, nil
}

// GetPublishedByID returns a published event; anything else is not found.
func (r *EventRepository) GetPublishedByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		eventBase+` WHERE e.id = $1 AND e.state = $2`, id, string(model.EventPublished),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id %s is not published", id)
		}
		return nil, fmt.Errorf("get published event: %w", err)
	}
	return e, nil
}

// ListByInitiator returns the user's own events, newest first.
func (r *EventRepository) ListByInitiator(ctx context.Context, initiatorID string, from, size int) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		eventBase+` WHERE e.initiator_id = $1 ORDER BY e.created_on DESC LIMIT $2 OFFSET $3`,
		initiatorID, size, from,
	)
	if err != nil {
		return nil, fmt.Errorf("list events by initiator: %w", err)
	}
	return collectEvents(rows)
}

// AdminFilter narrows the moderator event search.
type AdminFilter struct {
	Users      []string
	States     []model.EventState
	Categories []string
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

// AdminSearch returns events matching the moderator filter.
func (r *EventRepository) AdminSearch(ctx context.Context, f AdminFilter) ([]model.Event, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Users) > 0 {
		where = append(where, "e.initiator_id = ANY("+arg(f.Users)+")")
	}
	if len(f.States) > 0 {
		states := make([]string, len(f.States))
		for i, s := range f.States {
			states[i] = string(s)
		}
		where = append(where, "e.state = ANY("+arg(states)+")")
	}
	if len(f.Categories) > 0 {
		where = append(where, "e.category_id = ANY("+arg(f.Categories)+")")
	}
	if f.RangeStart != nil {
		where = append(where, "e.event_date >= "+arg(*f.RangeStart))
	}
	if f.RangeEnd != nil {
		where = append(where, "e.event_date <= "+arg(*f.RangeEnd))
	}

	query := eventBase
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.event_date ASC LIMIT " + arg(f.Size) + " OFFSET " + arg(f.From)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("admin event search: %w", err)
	}
	return collectEvents(rows)
}

// Public event sort modes.
const (
	SortEventDate = "EVENT_DATE"
	SortViews     = "VIEWS"
)

// PublicFilter narrows the public event search; only published events are
// ever returned.
type PublicFilter struct {
	Text          string
	Categories    []string
	Paid          *bool
	RangeStart    time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	From          int
	Size          int
}

// PublicSearch returns published events matching the filter, ordered by
// event date. Views-based ordering happens in the service after the
// view counts are attached.
func (r *EventRepository) PublicSearch(ctx context.Context, f PublicFilter) ([]model.Event, error) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where := []string{"e.state = " + arg(string(model.EventPublished))}
	if f.Text != "" {
		p := arg("%" + f.Text + "%")
		where = append(where, "(e.title ILIKE "+p+" OR e.annotation ILIKE "+p+")")
	}
	if len(f.Categories) > 0 {
		where = append(where, "e.category_id = ANY("+arg(f.Categories)+")")
	}
	if f.Paid != nil {
		where = append(where, "e.paid = "+arg(*f.Paid))
	}
	where = append(where, "e.event_date >= "+arg(f.RangeStart))
	if f.RangeEnd != nil {
		where = append(where, "e.event_date <= "+arg(*f.RangeEnd))
	}
	if f.OnlyAvailable {
		where = append(where, "(e.participant_limit = 0 OR e.confirmed_requests < e.participant_limit)")
	}

	query := eventBase + " WHERE " + strings.Join(where, " AND ") +
		" ORDER BY e.event_date ASC LIMIT " + arg(f.Size) + " OFFSET " + arg(f.From)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("public event search: %w", err)
	}
	return collectEvents(rows)
}

// ListByIDs returns the events with the given ids, skipping unknown ones.
func (r *EventRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return []model.Event{}, nil
	}
	rows, err := r.db.Query(ctx, eventBase+` WHERE e.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list events by ids: %w", err)
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	defer rows.Close()
	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
