// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/repository"
	"github.com/asyachem/explore-events/internal/stats"
)

// viewsEpoch is the lower bound used when asking the collector for
// all-time view counts.
var viewsEpoch = model.DateTime(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

// EventService orchestrates event lifecycle operations.
type EventService struct {
	events     *repository.EventRepository
	users      *repository.UserRepository
	categories *repository.CategoryRepository
	stats      stats.Client
	appName    string
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events *repository.EventRepository,
	users *repository.UserRepository,
	categories *repository.CategoryRepository,
	statsClient stats.Client,
	appName string,
) *EventService {
	return &EventService{
		events:     events,
		users:      users,
		categories: categories,
		stats:      statsClient,
		appName:    appName,
	}
}

// Create adds a new event in PENDING state on behalf of userID.
func (s *EventService) Create(ctx context.Context, userID string, req model.NewEvent) (*model.Event, error) {
	if req.Title == "" {
		return nil, apperr.BadRequest("event title is required")
	}
	if req.EventDate.IsZero() {
		return nil, apperr.BadRequest("event date is required")
	}
	if req.EventDate.Time().Before(time.Now().Add(model.CreateLeadTime)) {
		return nil, apperr.BadRequest("event date must be at least %s from now", model.CreateLeadTime)
	}
	if req.ParticipantLimit != nil && *req.ParticipantLimit < 0 {
		return nil, apperr.BadRequest("participant limit must not be negative")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		Category:          *category,
		Initiator:         user.Short(),
		Location:          req.Location,
		EventDate:         req.EventDate,
		RequestModeration: true,
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}
	return s.events.Create(ctx, event)
}

// ListByInitiator returns the user's own events.
func (s *EventService) ListByInitiator(ctx context.Context, userID string, from, size int) ([]model.EventShort, error) {
	events, err := s.events.ListByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return shorten(events), nil
}

// GetByInitiator returns one of the user's own events; foreign events are
// reported as not found.
func (s *EventService) GetByInitiator(ctx context.Context, userID, eventID string) (*model.Event, error) {
	return s.events.GetByIDAndInitiator(ctx, eventID, userID)
}

// UpdateByUser applies an owner edit. Only pending or canceled events can
// be edited, and the event date is re-validated against now.
func (s *EventService) UpdateByUser(ctx context.Context, userID, eventID string, upd model.UpdateEvent) (*model.Event, error) {
	event, err := s.events.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !event.Editable() {
		return nil, apperr.Conflict("only pending or canceled events can be changed")
	}

	if upd.EventDate != nil {
		if upd.EventDate.Time().Before(time.Now().Add(model.CreateLeadTime)) {
			return nil, apperr.BadRequest("event date must be at least %s from now", model.CreateLeadTime)
		}
		event.EventDate = *upd.EventDate
	}

	switch upd.StateAction {
	case model.ActionSendToReview:
		event.State = model.EventPending
	case model.ActionCancelReview:
		event.State = model.EventCanceled
	case "":
	default:
		return nil, apperr.BadRequest("unknown state action: %s", upd.StateAction)
	}

	if err := s.applyCategory(ctx, event, upd.Category); err != nil {
		return nil, err
	}
	event.ApplyPatch(upd)

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateByAdmin applies a moderator decision and/or field patch.
func (s *EventService) UpdateByAdmin(ctx context.Context, eventID string, upd model.UpdateEvent) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	switch upd.StateAction {
	case model.ActionPublishEvent:
		if err := event.Publish(time.Now()); err != nil {
			return nil, err
		}
	case model.ActionRejectEvent:
		if err := event.RejectModeration(); err != nil {
			return nil, err
		}
	case "":
	default:
		return nil, apperr.BadRequest("unknown state action: %s", upd.StateAction)
	}

	if upd.EventDate != nil {
		if upd.EventDate.Time().Before(time.Now()) {
			return nil, apperr.BadRequest("event date must not be in the past")
		}
		event.EventDate = *upd.EventDate
	}

	if err := s.applyCategory(ctx, event, upd.Category); err != nil {
		return nil, err
	}
	event.ApplyPatch(upd)

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// AdminSearchParams is the moderator listing filter in wire form.
type AdminSearchParams struct {
	Users      []string
	States     []string
	Categories []string
	RangeStart string
	RangeEnd   string
	From       int
	Size       int
}

// AdminSearch returns full events matching the moderator filter.
func (s *EventService) AdminSearch(ctx context.Context, p AdminSearchParams) ([]model.Event, error) {
	filter := repository.AdminFilter{
		Users:      p.Users,
		Categories: p.Categories,
		From:       p.From,
		Size:       p.Size,
	}
	for _, raw := range p.States {
		state, ok := model.ParseEventState(raw)
		if !ok {
			return nil, apperr.Conflict("unknown event state: %s", raw)
		}
		filter.States = append(filter.States, state)
	}
	var err error
	if filter.RangeStart, err = optionalTime(p.RangeStart); err != nil {
		return nil, err
	}
	if filter.RangeEnd, err = optionalTime(p.RangeEnd); err != nil {
		return nil, err
	}
	return s.events.AdminSearch(ctx, filter)
}

// PublicSearchParams is the public listing filter in wire form.
type PublicSearchParams struct {
	Text          string
	Categories    []string
	Paid          *bool
	RangeStart    string
	RangeEnd      string
	OnlyAvailable bool
	Sort          string
	From          int
	Size          int

	// Hit attribution.
	URI      string
	ClientIP string
}

// PublicSearch returns published events matching the filter, with view
// counts attached, and records the page view.
func (s *EventService) PublicSearch(ctx context.Context, p PublicSearchParams) ([]model.EventShort, error) {
	filter := repository.PublicFilter{
		Text:          p.Text,
		Categories:    p.Categories,
		Paid:          p.Paid,
		RangeStart:    time.Now(),
		OnlyAvailable: p.OnlyAvailable,
		From:          p.From,
		Size:          p.Size,
	}
	if p.RangeStart != "" {
		start, err := model.ParseDateTime(p.RangeStart)
		if err != nil {
			return nil, apperr.BadRequest("%v", err)
		}
		filter.RangeStart = start.Time()
	}
	if end, err := optionalTime(p.RangeEnd); err != nil {
		return nil, err
	} else if end != nil {
		if filter.RangeStart.After(*end) {
			return nil, apperr.BadRequest("range start must not be after range end")
		}
		filter.RangeEnd = end
	}

	events, err := s.events.PublicSearch(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.attachViews(ctx, events)
	if p.Sort == repository.SortViews {
		sortByViews(events)
	}

	s.stats.Hit(ctx, stats.EndpointHit{
		App: s.appName, URI: p.URI, IP: p.ClientIP, Timestamp: model.Now(),
	})
	return shorten(events), nil
}

// PublicGet returns a published event with its view count, and records the
// page view. Unpublished events read as not found.
func (s *EventService) PublicGet(ctx context.Context, eventID, uri, clientIP string) (*model.Event, error) {
	event, err := s.events.GetPublishedByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	events := []model.Event{*event}
	s.attachViews(ctx, events)
	event.Views = events[0].Views

	s.stats.Hit(ctx, stats.EndpointHit{
		App: s.appName, URI: uri, IP: clientIP, Timestamp: model.Now(),
	})
	return event, nil
}

// attachViews fills the derived Views field from the collector. The counts
// are display-only and never persisted; a collector failure leaves them at
// zero and is logged, never propagated.
func (s *EventService) attachViews(ctx context.Context, events []model.Event) {
	if len(events) == 0 {
		return
	}
	uris := make([]string, len(events))
	byURI := make(map[string]int, len(events))
	for i := range events {
		uri := "/events/" + events[i].ID
		uris[i] = uri
		byURI[uri] = i
	}

	counts, err := s.stats.Stats(ctx, viewsEpoch, model.Now(), uris, true)
	if err != nil {
		slog.Warn("stats unavailable, views left at zero", "error", err)
		return
	}
	for _, v := range counts {
		if i, ok := byURI[v.URI]; ok {
			events[i].Views = v.Hits
		}
	}
}

func (s *EventService) applyCategory(ctx context.Context, event *model.Event, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	event.Category = *category
	return nil
}

func optionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	dt, err := model.ParseDateTime(raw)
	if err != nil {
		return nil, apperr.BadRequest("%v", err)
	}
	t := dt.Time()
	return &t, nil
}

func shorten(events []model.Event) []model.EventShort {
	out := make([]model.EventShort, 0, len(events))
	for i := range events {
		out = append(out, events[i].Short())
	}
	return out
}

func sortByViews(events []model.Event) {
	// Stable keeps the repository's date ordering as tie-break.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Views > events[j].Views
	})
}
