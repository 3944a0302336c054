// Package stats implements the statistics service: endpoint hits in, view
// counts out. Hits are the only persisted fact; counts are derived per query.
package stats

import (
	"context"
	"strings"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type EndpointHit struct {
	ID        int64
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is one row of the aggregated report, ordered by hits descending.
type ViewStats struct {
	App  string
	URI  string
	Hits int64
}

type HitRepo interface {
	SaveHit(ctx context.Context, h *EndpointHit) error
	CountHits(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error)
}

type Service struct {
	hits HitRepo
}

func New(hits HitRepo) *Service {
	return &Service{hits: hits}
}

func (s *Service) RecordHit(ctx context.Context, app, uri, ip string, ts time.Time) (*EndpointHit, error) {
	app = strings.TrimSpace(app)
	uri = strings.TrimSpace(uri)
	ip = strings.TrimSpace(ip)

	if app == "" {
		return nil, domain.ErrValidationMeta("invalid hit", map[string]string{"app": "is required"})
	}
	if uri == "" {
		return nil, domain.ErrValidationMeta("invalid hit", map[string]string{"uri": "is required"})
	}
	if ip == "" {
		return nil, domain.ErrValidationMeta("invalid hit", map[string]string{"ip": "is required"})
	}
	if ts.IsZero() {
		return nil, domain.ErrValidationMeta("invalid hit", map[string]string{"timestamp": "is required"})
	}

	h := &EndpointHit{App: app, URI: uri, IP: ip, Timestamp: ts.UTC()}
	if err := s.hits.SaveHit(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Stats aggregates hits per (app, uri) inside [start, end]. With unique set,
// each ip counts once per uri.
func (s *Service) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.ErrValidation("start and end are required")
	}
	if end.Before(start) {
		return nil, domain.ErrValidation("end must not precede start")
	}
	return s.hits.CountHits(ctx, start.UTC(), end.UTC(), uris, unique)
}
