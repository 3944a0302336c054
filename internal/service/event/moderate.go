package event

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/reqctx"
)

// Publish moves a pending event to PUBLISHED. The transition runs under the
// event row lock and records an outbox notification atomically.
func (s *Service) Publish(ctx context.Context, eventID int64) (*domain.EventView, error) {
	now := s.clock.Now()
	e, err := s.events.ModerateEvent(ctx, reqctx.RequestID(ctx), eventID, func(e *domain.Event) (string, error) {
		if err := e.Publish(now); err != nil {
			return "", err
		}
		return "event.published", nil
	})
	if err != nil {
		return nil, err
	}
	// A freshly published event has no confirmations, likes or views yet.
	v := domain.Snapshot(e, 0, 0, 0, 0)
	return &v, nil
}

func (s *Service) Reject(ctx context.Context, eventID int64) (*domain.EventView, error) {
	e, err := s.events.ModerateEvent(ctx, reqctx.RequestID(ctx), eventID, func(e *domain.Event) (string, error) {
		if err := e.Reject(); err != nil {
			return "", err
		}
		return "event.rejected", nil
	})
	if err != nil {
		return nil, err
	}
	v := domain.Snapshot(e, 0, 0, 0, 0)
	return &v, nil
}

func (s *Service) CancelByUser(ctx context.Context, userID, eventID int64) (*domain.EventView, error) {
	e, err := s.events.ModerateEvent(ctx, reqctx.RequestID(ctx), eventID, func(e *domain.Event) (string, error) {
		if err := e.CancelByInitiator(userID); err != nil {
			return "", err
		}
		return "event.canceled", nil
	})
	if err != nil {
		return nil, err
	}
	v := domain.Snapshot(e, 0, 0, 0, 0)
	return &v, nil
}
