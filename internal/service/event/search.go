package event

import (
	"context"
	"sort"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

const defaultPageSize = 10

// SearchPublic runs the public listing. Hits are recorded against the
// listing uri. A RATING ordering is resolved by the store before pagination;
// VIEWS is applied to the projected page since view counts live in the
// statistics service.
func (s *Service) SearchPublic(ctx context.Context, f PublicFilter, ip string) ([]domain.EventView, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeEnd.Before(*f.RangeStart) {
		return nil, domain.ErrValidation("range end must not precede range start")
	}
	if f.RangeStart == nil && f.RangeEnd == nil {
		now := s.clock.Now()
		f.RangeStart = &now
	}
	if f.Size <= 0 {
		f.Size = defaultPageSize
	}
	if f.From < 0 {
		f.From = 0
	}

	events, err := s.events.SearchPublicEvents(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.RecordHit(ctx, "/events", ip)
	}

	views, err := s.projectMany(ctx, events)
	if err != nil {
		return nil, err
	}

	if f.Sort == SortViews {
		sort.SliceStable(views, func(i, j int) bool { return views[i].Views > views[j].Views })
	}
	return views, nil
}

func (s *Service) SearchAdmin(ctx context.Context, f AdminFilter) ([]domain.EventView, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeEnd.Before(*f.RangeStart) {
		return nil, domain.ErrValidation("range end must not precede range start")
	}
	if f.Size <= 0 {
		f.Size = defaultPageSize
	}
	if f.From < 0 {
		f.From = 0
	}

	events, err := s.events.SearchAdminEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.projectMany(ctx, events)
}
