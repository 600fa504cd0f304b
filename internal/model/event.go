package model

import (
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
)

// Lead times re-validated against "now" on every call, never cached from
// creation time.
const (
	// CreateLeadTime is the minimum distance between now and the event
	// date when an event is created or edited by its owner.
	CreateLeadTime = 2 * time.Hour
	// PublishLeadTime is the minimum distance between now and the event
	// date at the moment of publication.
	PublishLeadTime = 1 * time.Hour
)

// Location is the geographic position of an event.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is a publishable activity with a seat limit and a moderation flag.
// ConfirmedRequests is a denormalized counter that must always equal the
// number of CONFIRMED requests for the event; it is only mutated inside
// the row-locked admission transactions in the repository layer.
type Event struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	Category          Category   `json:"category"`
	Initiator         UserShort  `json:"initiator"`
	Location          Location   `json:"location"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int        `json:"participantLimit"`
	RequestModeration bool       `json:"requestModeration"`
	State             EventState `json:"state"`
	EventDate         DateTime   `json:"eventDate"`
	CreatedOn         DateTime   `json:"createdOn"`
	PublishedOn       *DateTime  `json:"publishedOn,omitempty"`
	ConfirmedRequests int        `json:"confirmedRequests"`
	Views             int64      `json:"views"`
}

// IsFull reports whether the event has no remaining confirmed seats.
// A zero participant limit means unlimited.
func (e *Event) IsFull() bool {
	return e.ParticipantLimit > 0 && e.ConfirmedRequests >= e.ParticipantLimit
}

// Editable reports whether the owner may still change substantive fields.
func (e *Event) Editable() bool {
	return e.State == EventPending || e.State == EventCanceled
}

// Publish moves the event to PUBLISHED and stamps publishedOn. It fails
// unless the event is PENDING and its date is at least PublishLeadTime
// after now.
func (e *Event) Publish(now time.Time) error {
	if !e.State.CanTransition(EventPublished) {
		return apperr.Conflict("event is not pending publication")
	}
	if e.EventDate.Time().Before(now.Add(PublishLeadTime)) {
		return apperr.Conflict("event date must be at least %s after publication", PublishLeadTime)
	}
	e.State = EventPublished
	published := DateTime(now.Truncate(time.Second))
	e.PublishedOn = &published
	return nil
}

// RejectModeration moves the event to CANCELED. Published events cannot be
// un-published through this path.
func (e *Event) RejectModeration() error {
	if e.State == EventPublished {
		return apperr.Conflict("cannot reject an already published event")
	}
	e.State = EventCanceled
	return nil
}

// NewEvent is the payload for creating an event.
type NewEvent struct {
	Title             string   `json:"title"`
	Annotation        string   `json:"annotation"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	EventDate         DateTime `json:"eventDate"`
	Location          Location `json:"location"`
	Paid              *bool    `json:"paid"`
	ParticipantLimit  *int     `json:"participantLimit"`
	RequestModeration *bool    `json:"requestModeration"`
}

// UpdateEvent is the patch payload for owner and moderator updates.
// Nil fields are left unchanged.
type UpdateEvent struct {
	Title             *string   `json:"title"`
	Annotation        *string   `json:"annotation"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category"`
	EventDate         *DateTime `json:"eventDate"`
	Location          *Location `json:"location"`
	Paid              *bool     `json:"paid"`
	ParticipantLimit  *int      `json:"participantLimit"`
	RequestModeration *bool     `json:"requestModeration"`
	StateAction       string    `json:"stateAction"`
}

// ApplyPatch merges the non-nil plain fields of u into e. State actions,
// category resolution and date validation stay with the caller.
func (e *Event) ApplyPatch(u UpdateEvent) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Annotation != nil {
		e.Annotation = *u.Annotation
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Paid != nil {
		e.Paid = *u.Paid
	}
	if u.ParticipantLimit != nil {
		e.ParticipantLimit = *u.ParticipantLimit
	}
	if u.RequestModeration != nil {
		e.RequestModeration = *u.RequestModeration
	}
}

// EventShort is the reduced event representation used in listings.
type EventShort struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Annotation        string    `json:"annotation"`
	Category          Category  `json:"category"`
	Initiator         UserShort `json:"initiator"`
	Paid              bool      `json:"paid"`
	EventDate         DateTime  `json:"eventDate"`
	ConfirmedRequests int       `json:"confirmedRequests"`
	Views             int64     `json:"views"`
}

// Short projects the event onto its listing representation.
func (e *Event) Short() EventShort {
	return EventShort{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Category:          e.Category,
		Initiator:         e.Initiator,
		Paid:              e.Paid,
		EventDate:         e.EventDate,
		ConfirmedRequests: e.ConfirmedRequests,
		Views:             e.Views,
	}
}
