package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type stubRequests struct {
	added    []int64
	listedBy []int64
}

func (s *stubRequests) AddRequest(ctx context.Context, traceID string, userID, eventID int64, now time.Time) (*domain.Request, error) {
	s.added = append(s.added, eventID)
	return &domain.Request{ID: 1, EventID: eventID, RequesterID: userID, Created: now, State: domain.RequestPending}, nil
}

func (s *stubRequests) ConfirmRequest(ctx context.Context, traceID string, initiatorID, eventID, requestID int64) (*domain.ConfirmOutcome, error) {
	return &domain.ConfirmOutcome{
		Request: &domain.Request{ID: requestID, EventID: eventID, State: domain.RequestConfirm},
	}, nil
}

func (s *stubRequests) RejectRequest(ctx context.Context, initiatorID, eventID, requestID int64) (*domain.Request, error) {
	return &domain.Request{ID: requestID, EventID: eventID, State: domain.RequestReject}, nil
}

func (s *stubRequests) CancelOwnRequest(ctx context.Context, userID, requestID int64) (*domain.Request, error) {
	return &domain.Request{ID: requestID, RequesterID: userID, State: domain.RequestCancel}, nil
}

func (s *stubRequests) ListRequestsByRequester(ctx context.Context, userID int64) ([]domain.Request, error) {
	s.listedBy = append(s.listedBy, userID)
	return nil, nil
}

func (s *stubRequests) ListRequestsForEvent(ctx context.Context, eventID int64) ([]domain.Request, error) {
	return []domain.Request{{ID: 1, EventID: eventID}}, nil
}

func (s *stubRequests) ConfirmedCount(ctx context.Context, eventID int64) (int64, error) {
	return 0, nil
}

type stubEvents struct{ byID map[int64]*domain.Event }

func (s *stubEvents) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

type stubUsers struct{ known map[int64]bool }

func (s *stubUsers) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if !s.known[id] {
		return nil, domain.ErrNotFound("user not found")
	}
	return &domain.User{ID: id}, nil
}

func newFixture() (*Service, *stubRequests) {
	requests := &stubRequests{}
	events := &stubEvents{byID: map[int64]*domain.Event{
		1: {ID: 1, InitiatorID: 10, State: domain.StatePublished},
	}}
	users := &stubUsers{known: map[int64]bool{10: true, 20: true}}
	clock := fakeClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(requests, events, users, clock), requests
}

func TestAdd(t *testing.T) {
	t.Run("known user passes through", func(t *testing.T) {
		svc, requests := newFixture()

		rq, err := svc.Add(context.Background(), 20, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestPending, rq.State)
		assert.Equal(t, []int64{1}, requests.added)
	})

	t.Run("unknown user never reaches the store", func(t *testing.T) {
		svc, requests := newFixture()

		_, err := svc.Add(context.Background(), 999, 1)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
		assert.Empty(t, requests.added)
	})
}

func TestListForEvent(t *testing.T) {
	t.Run("initiator sees the list", func(t *testing.T) {
		svc, _ := newFixture()

		reqs, err := svc.ListForEvent(context.Background(), 10, 1)
		require.NoError(t, err)
		assert.Len(t, reqs, 1)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.ListForEvent(context.Background(), 20, 1)
		assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.ListForEvent(context.Background(), 10, 99)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}

func TestListMine(t *testing.T) {
	svc, requests := newFixture()

	_, err := svc.ListMine(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, requests.listedBy)

	_, err = svc.ListMine(context.Background(), 999)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
