package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2026-01-01 00:00:00", q.Get("start"))
		assert.Equal(t, "2026-02-01 00:00:00", q.Get("end"))
		assert.Equal(t, "true", q.Get("unique"))
		assert.Equal(t, []string{"/events/a", "/events/b"}, q["uris"])

		_ = json.NewEncoder(w).Encode([]ViewStats{
			{App: "explore-events", URI: "/events/a", Hits: 7},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	start := model.DateTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	end := model.DateTime(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	out, err := c.Stats(context.Background(), start, end, []string{"/events/a", "/events/b"}, true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "/events/a", out[0].URI)
	assert.Equal(t, int64(7), out[0].Hits)
}

func TestHTTPClientStats_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Stats(context.Background(), model.Now(), model.Now(), nil, false)
	assert.Error(t, err)
}

func TestHTTPClientHit(t *testing.T) {
	var got EndpointHit
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hit", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.Hit(context.Background(), EndpointHit{
		App:       "explore-events",
		URI:       "/events/a",
		IP:        "10.0.0.1",
		Timestamp: model.Now(),
	})

	assert.Equal(t, "explore-events", got.App)
	assert.Equal(t, "/events/a", got.URI)
	assert.Equal(t, "10.0.0.1", got.IP)
}

// Hit must never panic or propagate anything when the collector is down.
func TestHTTPClientHit_SwallowsFailures(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")
	assert.NotPanics(t, func() {
		c.Hit(context.Background(), EndpointHit{App: "a", URI: "/x", IP: "10.0.0.1"})
	})
}
