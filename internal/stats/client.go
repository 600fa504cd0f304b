// Package stats is the client side of the analytics collector. The main
// service treats the collector as an opaque, best-effort dependency:
// recording a hit never fails the caller, and a failed stats read degrades
// to zero views. Nothing here may influence an admission decision.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/asyachem/explore-events/internal/model"
)

// EndpointHit is one recorded page view.
type EndpointHit struct {
	App       string         `json:"app"`
	URI       string         `json:"uri"`
	IP        string         `json:"ip"`
	Timestamp model.DateTime `json:"timestamp"`
}

// ViewStats is the aggregated hit count for one URI.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// Client is the collaborator interface consumed by the services.
type Client interface {
	// Hit records a page view, fire-and-forget. Errors are logged, never
	// returned.
	Hit(ctx context.Context, hit EndpointHit)
	// Stats returns hit counts per URI within [start, end].
	Stats(ctx context.Context, start, end model.DateTime, uris []string, unique bool) ([]ViewStats, error)
}

// HTTPClient talks to the collector over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs an HTTPClient for the given collector base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Hit posts the hit to the collector and swallows every failure.
func (c *HTTPClient) Hit(ctx context.Context, hit EndpointHit) {
	body, err := json.Marshal(hit)
	if err != nil {
		slog.Error("stats: encode hit", "error", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		slog.Error("stats: build hit request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("stats: send hit", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		slog.Error("stats: hit rejected", "status", resp.StatusCode)
	}
}

// Stats queries aggregated view counts; failures return an empty slice and
// the error for the caller to log.
func (c *HTTPClient) Stats(ctx context.Context, start, end model.DateTime, uris []string, unique bool) ([]ViewStats, error) {
	q := url.Values{}
	q.Set("start", start.String())
	q.Set("end", end.String())
	q.Set("unique", strconv.FormatBool(unique))
	for _, uri := range uris {
		q.Add("uris", uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats server returned %d", resp.StatusCode)
	}

	var out []ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	return out, nil
}
