package model

import (
	"testing"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublish(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	event := &Event{
		State:     EventPending,
		EventDate: DateTime(now.Add(2 * time.Hour)),
	}
	require.NoError(t, event.Publish(now))
	assert.Equal(t, EventPublished, event.State)
	require.NotNil(t, event.PublishedOn)
	assert.Equal(t, now, event.PublishedOn.Time())
}

func TestEventPublish_TooClose(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	event := &Event{
		State:     EventPending,
		EventDate: DateTime(now.Add(30 * time.Minute)),
	}
	err := event.Publish(now)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, EventPending, event.State)
	assert.Nil(t, event.PublishedOn)
}

func TestEventPublish_OnlyFromPending(t *testing.T) {
	now := time.Now()
	for _, state := range []EventState{EventPublished, EventCanceled} {
		event := &Event{State: state, EventDate: DateTime(now.Add(24 * time.Hour))}
		err := event.Publish(now)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	}
}

func TestEventRejectModeration(t *testing.T) {
	event := &Event{State: EventPending}
	require.NoError(t, event.RejectModeration())
	assert.Equal(t, EventCanceled, event.State)

	published := &Event{State: EventPublished}
	err := published.RejectModeration()
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, EventPublished, published.State)
}

func TestEventIsFull(t *testing.T) {
	assert.False(t, (&Event{ParticipantLimit: 0, ConfirmedRequests: 1000}).IsFull())
	assert.False(t, (&Event{ParticipantLimit: 5, ConfirmedRequests: 4}).IsFull())
	assert.True(t, (&Event{ParticipantLimit: 5, ConfirmedRequests: 5}).IsFull())
}

func TestEventEditable(t *testing.T) {
	assert.True(t, (&Event{State: EventPending}).Editable())
	assert.True(t, (&Event{State: EventCanceled}).Editable())
	assert.False(t, (&Event{State: EventPublished}).Editable())
}

func TestEventApplyPatch(t *testing.T) {
	event := &Event{
		Title:             "old title",
		Annotation:        "old annotation",
		Paid:              false,
		ParticipantLimit:  10,
		RequestModeration: true,
	}

	title := "new title"
	paid := true
	limit := 0
	event.ApplyPatch(UpdateEvent{Title: &title, Paid: &paid, ParticipantLimit: &limit})

	assert.Equal(t, "new title", event.Title)
	assert.True(t, event.Paid)
	assert.Equal(t, 0, event.ParticipantLimit)
	// Untouched fields keep their values.
	assert.Equal(t, "old annotation", event.Annotation)
	assert.True(t, event.RequestModeration)
}
