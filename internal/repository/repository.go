// Package repository implements all database queries for the
// event-publishing service. It uses pgx directly (no ORM) so the admission
// transactions keep explicit control over row locking.
package repository

import (
	"time"

	"github.com/asyachem/explore-events/internal/model"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// eventColumns is the select list shared by every event query; keep it in
// sync with scanEvent.
const eventColumns = `e.id, e.title, e.annotation, e.description,
	c.id, c.name, u.id, u.name,
	e.lat, e.lon, e.paid, e.participant_limit, e.request_moderation,
	e.state, e.event_date, e.created_on, e.published_on, e.confirmed_requests`

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e           model.Event
		state       string
		eventDate   time.Time
		createdOn   time.Time
		publishedOn *time.Time
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Annotation, &e.Description,
		&e.Category.ID, &e.Category.Name, &e.Initiator.ID, &e.Initiator.Name,
		&e.Location.Lat, &e.Location.Lon, &e.Paid, &e.ParticipantLimit, &e.RequestModeration,
		&state, &eventDate, &createdOn, &publishedOn, &e.ConfirmedRequests,
	)
	if err != nil {
		return nil, err
	}
	e.State = model.EventState(state)
	e.EventDate = model.DateTime(eventDate)
	e.CreatedOn = model.DateTime(createdOn)
	if publishedOn != nil {
		p := model.DateTime(*publishedOn)
		e.PublishedOn = &p
	}
	return &e, nil
}

func scanRequest(row rowScanner) (*model.Request, error) {
	var (
		r       model.Request
		status  string
		created time.Time
	)
	if err := row.Scan(&r.ID, &r.EventID, &r.RequesterID, &status, &created); err != nil {
		return nil, err
	}
	r.Status = model.RequestStatus(status)
	r.Created = model.DateTime(created)
	return &r, nil
}

func scanComment(row rowScanner) (*model.Comment, error) {
	var (
		c                  model.Comment
		status             string
		createdAt, updated time.Time
	)
	err := row.Scan(&c.ID, &c.EventID, &c.AuthorID, &c.Text, &status, &c.RejectionReason, &createdAt, &updated)
	if err != nil {
		return nil, err
	}
	c.Status = model.CommentStatus(status)
	c.CreatedAt = model.DateTime(createdAt)
	c.UpdatedAt = model.DateTime(updated)
	return &c, nil
}
