// Package statserver implements the analytics collector: it records
// endpoint hits and serves aggregated view counts per URI over a time
// range. It runs as its own binary (cmd/stats) against its own tables.
package statserver

import (
	"context"
	"fmt"
	"time"

	"github.com/asyachem/explore-events/internal/stats"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS endpoint_hits (
    id  TEXT PRIMARY KEY,
    app TEXT NOT NULL,
    uri TEXT NOT NULL,
    ip  TEXT NOT NULL,
    ts  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_endpoint_hits_uri_ts ON endpoint_hits (uri, ts);
`

// HitRepository handles persistence for endpoint hits.
type HitRepository struct {
	db *pgxpool.Pool
}

// NewHitRepository constructs a HitRepository.
func NewHitRepository(db *pgxpool.Pool) *HitRepository {
	return &HitRepository{db: db}
}

// Migrate applies the collector schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply stats schema: %w", err)
	}
	return nil
}

// Save records one hit.
func (r *HitRepository) Save(ctx context.Context, hit stats.EndpointHit) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO endpoint_hits (id, app, uri, ip, ts) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), hit.App, hit.URI, hit.IP, hit.Timestamp.Time(),
	)
	if err != nil {
		return fmt.Errorf("insert hit: %w", err)
	}
	return nil
}

// Stats returns hit counts grouped by app and uri within [start, end],
// most-viewed first. With unique set, each client ip counts once per uri.
func (r *HitRepository) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]stats.ViewStats, error) {
	count := "COUNT(*)"
	if unique {
		count = "COUNT(DISTINCT ip)"
	}
	query := `SELECT app, uri, ` + count + ` AS hits
		FROM endpoint_hits WHERE ts BETWEEN $1 AND $2`
	args := []any{start, end}
	if len(uris) > 0 {
		query += ` AND uri = ANY($3)`
		args = append(args, uris)
	}
	query += ` GROUP BY app, uri ORDER BY hits DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := []stats.ViewStats{}
	for rows.Next() {
		var v stats.ViewStats
		if err := rows.Scan(&v.App, &v.URI, &v.Hits); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
