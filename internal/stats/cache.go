package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/go-redis/redis/v8"
)

// cacheTTL keeps view counts slightly stale at most; views are a derived,
// non-authoritative display field.
const cacheTTL = 30 * time.Second

// Cached wraps a Client with a short-lived redis cache for Stats reads.
// A redis failure falls through to the inner client; hits are passed
// through untouched.
type Cached struct {
	inner Client
	rdb   *redis.Client
}

// NewCached constructs the caching decorator.
func NewCached(inner Client, rdb *redis.Client) *Cached {
	return &Cached{inner: inner, rdb: rdb}
}

func (c *Cached) Hit(ctx context.Context, hit EndpointHit) {
	c.inner.Hit(ctx, hit)
}

func (c *Cached) Stats(ctx context.Context, start, end model.DateTime, uris []string, unique bool) ([]ViewStats, error) {
	key := cacheKey(start, end, uris, unique)

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var cached []ViewStats
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		slog.Warn("stats cache: read failed", "error", err)
	}

	out, err := c.inner.Stats(ctx, start, end, uris, unique)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			slog.Warn("stats cache: write failed", "error", err)
		}
	}
	return out, nil
}

func cacheKey(start, end model.DateTime, uris []string, unique bool) string {
	return "views:" + start.String() + ":" + end.String() + ":" +
		strconv.FormatBool(unique) + ":" + strings.Join(uris, ",")
}
