package event

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

// UpdateByInitiator merges non-nil fields into the caller's own event.
// Edits are allowed only while the event is PENDING or CANCELED; a published
// or rejected event is frozen for its initiator.
func (s *Service) UpdateByInitiator(ctx context.Context, userID, eventID int64, patch domain.EventPatch) (*domain.EventView, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != userID {
		return nil, domain.ErrForbidden("only the initiator can update the event")
	}
	if e.State != domain.StatePending && e.State != domain.StateCanceled {
		return nil, domain.ErrForbidden("only a pending or canceled event can be updated by its initiator")
	}

	if patch.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := e.ApplyPatch(patch, s.clock.Now(), false); err != nil {
		return nil, err
	}
	if err := s.events.UpdateEvent(ctx, e); err != nil {
		return nil, err
	}
	return s.project(ctx, e)
}

// UpdateByAdmin has the same merge semantics without the ownership gate and
// may additionally flip request moderation.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID int64, patch domain.EventPatch) (*domain.EventView, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := e.ApplyPatch(patch, s.clock.Now(), true); err != nil {
		return nil, err
	}
	if err := s.events.UpdateEvent(ctx, e); err != nil {
		return nil, err
	}
	return s.project(ctx, e)
}
