package statserver

import (
	"context"
	"testing"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHitStore struct {
	saved []stats.EndpointHit
	start time.Time
	end   time.Time
	out   []stats.ViewStats
}

func (f *fakeHitStore) Save(_ context.Context, hit stats.EndpointHit) error {
	f.saved = append(f.saved, hit)
	return nil
}

func (f *fakeHitStore) Stats(_ context.Context, start, end time.Time, uris []string, unique bool) ([]stats.ViewStats, error) {
	f.start, f.end = start, end
	return f.out, nil
}

func TestSaveHit(t *testing.T) {
	store := &fakeHitStore{}
	svc := NewService(store)

	err := svc.SaveHit(context.Background(), stats.EndpointHit{
		App: "explore-events", URI: "/events/a", IP: "10.0.0.1",
	})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	// A missing timestamp is stamped on arrival.
	assert.False(t, store.saved[0].Timestamp.IsZero())
}

func TestSaveHit_Validation(t *testing.T) {
	svc := NewService(&fakeHitStore{})

	err := svc.SaveHit(context.Background(), stats.EndpointHit{URI: "/events/a"})
	assert.True(t, apperr.IsBadRequest(err))
	err = svc.SaveHit(context.Background(), stats.EndpointHit{App: "explore-events"})
	assert.True(t, apperr.IsBadRequest(err))
}

func TestStats_ParsesWindow(t *testing.T) {
	store := &fakeHitStore{out: []stats.ViewStats{{App: "explore-events", URI: "/events/a", Hits: 3}}}
	svc := NewService(store)

	out, err := svc.Stats(context.Background(), "2026-01-01 00:00:00", "2026-02-01 00:00:00", nil, false)
	require.NoError(t, err)
	assert.Equal(t, store.out, out)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), store.start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), store.end)
}

func TestStats_Validation(t *testing.T) {
	svc := NewService(&fakeHitStore{})

	tests := []struct {
		name       string
		start, end string
	}{
		{"missing start", "", "2026-02-01 00:00:00"},
		{"missing end", "2026-01-01 00:00:00", ""},
		{"bad start format", "2026-01-01T00:00:00Z", "2026-02-01 00:00:00"},
		{"start after end", "2026-02-01 00:00:00", "2026-01-01 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Stats(context.Background(), tt.start, tt.end, nil, false)
			assert.True(t, apperr.IsBadRequest(err))
		})
	}
}
