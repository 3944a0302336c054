package request

import (
	"context"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/reqctx"
)

type Clock interface {
	Now() time.Time
}

// RequestRepo runs every read-check-write as one transaction; see the
// locking discipline in the postgres package.
type RequestRepo interface {
	AddRequest(ctx context.Context, traceID string, userID, eventID int64, now time.Time) (*domain.Request, error)
	ConfirmRequest(ctx context.Context, traceID string, initiatorID, eventID, requestID int64) (*domain.ConfirmOutcome, error)
	RejectRequest(ctx context.Context, initiatorID, eventID, requestID int64) (*domain.Request, error)
	CancelOwnRequest(ctx context.Context, userID, requestID int64) (*domain.Request, error)

	ListRequestsByRequester(ctx context.Context, userID int64) ([]domain.Request, error)
	ListRequestsForEvent(ctx context.Context, eventID int64) ([]domain.Request, error)
	ConfirmedCount(ctx context.Context, eventID int64) (int64, error)
}

type EventRepo interface {
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}

type UserRepo interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	requests RequestRepo
	events   EventRepo
	users    UserRepo
	clock    Clock
}

func New(requests RequestRepo, events EventRepo, users UserRepo, clock Clock) *Service {
	return &Service{requests: requests, events: events, users: users, clock: clock}
}

func (s *Service) Add(ctx context.Context, userID, eventID int64) (*domain.Request, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.AddRequest(ctx, reqctx.RequestID(ctx), userID, eventID, s.clock.Now())
}

// Confirm approves one pending request. When the confirmation exhausts the
// participant limit, the repository bulk-rejects every other pending request
// in the same transaction.
func (s *Service) Confirm(ctx context.Context, initiatorID, eventID, requestID int64) (*domain.ConfirmOutcome, error) {
	return s.requests.ConfirmRequest(ctx, reqctx.RequestID(ctx), initiatorID, eventID, requestID)
}

func (s *Service) Reject(ctx context.Context, initiatorID, eventID, requestID int64) (*domain.Request, error) {
	return s.requests.RejectRequest(ctx, initiatorID, eventID, requestID)
}

func (s *Service) CancelByRequester(ctx context.Context, userID, requestID int64) (*domain.Request, error) {
	return s.requests.CancelOwnRequest(ctx, userID, requestID)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Request, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.ListRequestsByRequester(ctx, userID)
}

// ListForEvent exposes an event's requests to its initiator only.
func (s *Service) ListForEvent(ctx context.Context, initiatorID, eventID int64) ([]domain.Request, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != initiatorID {
		return nil, domain.ErrForbidden("only the event initiator can list its requests")
	}
	return s.requests.ListRequestsForEvent(ctx, eventID)
}
