package event

import (
	"context"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type CreateCmd struct {
	InitiatorID       int64
	CategoryID        int64
	Annotation        string
	Description       string
	Title             string
	EventDate         time.Time
	Paid              bool
	ParticipantLimit  int64
	RequestModeration bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.EventView, error) {
	if _, err := s.users.GetUser(ctx, cmd.InitiatorID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetCategory(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	e, err := domain.NewEvent(
		cmd.InitiatorID, cmd.CategoryID,
		cmd.Annotation, cmd.Description, cmd.Title,
		cmd.EventDate, cmd.Paid, cmd.ParticipantLimit, cmd.RequestModeration,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.events.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	v := domain.Snapshot(e, 0, 0, 0, 0)
	return &v, nil
}
