package event

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

func (s *Service) GetByInitiator(ctx context.Context, userID, eventID int64) (*domain.EventView, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != userID {
		return nil, domain.ErrForbidden("only the initiator can view this event here")
	}
	return s.project(ctx, e)
}

func (s *Service) ListByInitiator(ctx context.Context, userID int64, from, size int) ([]domain.EventView, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.events.ListEventsByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.projectMany(ctx, events)
}

// ProjectByIDs resolves a fixed set of events into read views; used by
// compilations.
func (s *Service) ProjectByIDs(ctx context.Context, ids []int64) ([]domain.EventView, error) {
	events, err := s.events.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.projectMany(ctx, events)
}

// GetPublic serves the public event page: only published events are visible,
// and every read records a hit with the statistics service.
func (s *Service) GetPublic(ctx context.Context, eventID int64, ip string) (*domain.EventView, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != domain.StatePublished {
		return nil, domain.ErrNotFound("event not found")
	}

	if s.stats != nil {
		s.stats.RecordHit(ctx, eventURI(eventID), ip)
	}
	return s.project(ctx, e)
}
