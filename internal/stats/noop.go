package stats

import (
	"context"

	"github.com/asyachem/explore-events/internal/model"
)

// Noop is a Client that records nothing and reports zero views. Used in
// tests and when no collector is configured.
type Noop struct{}

func (Noop) Hit(context.Context, EndpointHit) {}

func (Noop) Stats(context.Context, model.DateTime, model.DateTime, []string, bool) ([]ViewStats, error) {
	return []ViewStats{}, nil
}
