package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gorden73/Explore-with-me-sub000/internal/stats"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) SaveHit(ctx context.Context, h *stats.EndpointHit) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO endpoint_hits (app, uri, ip, hit_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		h.App, h.URI, h.IP, h.Timestamp,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("save hit: %w", err)
	}
	return nil
}

func (r *Repository) CountHits(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]stats.ViewStats, error) {
	counter := "COUNT(*)"
	if unique {
		counter = "COUNT(DISTINCT ip)"
	}

	query := `
		SELECT app, uri, ` + counter + ` AS hits
		FROM endpoint_hits
		WHERE hit_at BETWEEN $1 AND $2`
	args := []any{start, end}
	if len(uris) > 0 {
		query += ` AND uri = ANY($3)`
		args = append(args, uris)
	}
	query += `
		GROUP BY app, uri
		ORDER BY hits DESC, uri`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count hits: %w", err)
	}
	defer rows.Close()

	var out []stats.ViewStats
	for rows.Next() {
		var vs stats.ViewStats
		if err := rows.Scan(&vs.App, &vs.URI, &vs.Hits); err != nil {
			return nil, fmt.Errorf("scan view stats: %w", err)
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}
