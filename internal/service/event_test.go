package service

import (
	"testing"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTime(t *testing.T) {
	v, err := optionalTime("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = optionalTime("2026-03-01 18:30:00")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), *v)

	_, err = optionalTime("03/01/2026")
	assert.True(t, apperr.IsBadRequest(err))
}

func TestSortByViews(t *testing.T) {
	events := []model.Event{
		{ID: "a", Views: 3},
		{ID: "b", Views: 10},
		{ID: "c", Views: 3},
		{ID: "d", Views: 0},
	}
	sortByViews(events)

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	// Descending by views, original order kept among ties.
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)
}

func TestShorten(t *testing.T) {
	events := []model.Event{
		{ID: "a", Title: "First", Views: 2, ConfirmedRequests: 1},
		{ID: "b", Title: "Second"},
	}
	out := shorten(events)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "First", out[0].Title)
	assert.Equal(t, int64(2), out[0].Views)
	assert.Equal(t, 1, out[0].ConfirmedRequests)

	assert.Empty(t, shorten(nil))
}
