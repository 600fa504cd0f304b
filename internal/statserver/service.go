package statserver

import (
	"context"
	"time"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/stats"
)

// hitStore is the persistence surface the service needs.
type hitStore interface {
	Save(ctx context.Context, hit stats.EndpointHit) error
	Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]stats.ViewStats, error)
}

// Service validates collector requests and delegates to the store.
type Service struct {
	hits hitStore
}

// NewService constructs a Service.
func NewService(hits hitStore) *Service {
	return &Service{hits: hits}
}

// SaveHit records one endpoint hit.
func (s *Service) SaveHit(ctx context.Context, hit stats.EndpointHit) error {
	if hit.App == "" || hit.URI == "" {
		return apperr.BadRequest("app and uri are required")
	}
	if hit.Timestamp.IsZero() {
		hit.Timestamp = model.Now()
	}
	return s.hits.Save(ctx, hit)
}

// Stats returns aggregated view counts for the given window.
func (s *Service) Stats(ctx context.Context, start, end string, uris []string, unique bool) ([]stats.ViewStats, error) {
	if start == "" || end == "" {
		return nil, apperr.BadRequest("start and end parameters are required")
	}
	startAt, err := model.ParseDateTime(start)
	if err != nil {
		return nil, apperr.BadRequest("invalid start: %v", err)
	}
	endAt, err := model.ParseDateTime(end)
	if err != nil {
		return nil, apperr.BadRequest("invalid end: %v", err)
	}
	if startAt.Time().After(endAt.Time()) {
		return nil, apperr.BadRequest("start must not be after end")
	}
	return s.hits.Stats(ctx, startAt.Time(), endAt.Time(), uris, unique)
}
