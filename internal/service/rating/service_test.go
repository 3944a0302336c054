package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type memVotes struct {
	nextID int64
	votes  []domain.Like
}

func (m *memVotes) AddVote(ctx context.Context, userID, eventID int64, isLike bool) (*domain.Like, error) {
	for _, l := range m.votes {
		if l.UserID == userID && l.EventID == eventID {
			return nil, domain.ErrConflict("user already voted for this event")
		}
	}
	m.nextID++
	l := domain.Like{ID: m.nextID, UserID: userID, EventID: eventID, IsLike: isLike}
	m.votes = append(m.votes, l)
	return &l, nil
}

func (m *memVotes) RemoveVote(ctx context.Context, userID, eventID int64, isLike bool) error {
	for i, l := range m.votes {
		if l.UserID == userID && l.EventID == eventID && l.IsLike == isLike {
			m.votes = append(m.votes[:i], m.votes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("vote not found")
}

func (m *memVotes) ListVotes(ctx context.Context, eventID int64, isLike bool) ([]domain.Like, error) {
	var out []domain.Like
	for _, l := range m.votes {
		if l.EventID == eventID && l.IsLike == isLike {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memVotes) VoteCounts(ctx context.Context, eventID int64) (domain.VoteTotals, error) {
	var t domain.VoteTotals
	for _, l := range m.votes {
		if l.EventID != eventID {
			continue
		}
		if l.IsLike {
			t.Likes++
		} else {
			t.Dislikes++
		}
	}
	return t, nil
}

type stubEvents struct{ byID map[int64]*domain.Event }

func (s *stubEvents) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

type stubUsers struct {
	byID   map[int64]*domain.User
	totals map[int64][2]int64
}

func (s *stubUsers) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found")
	}
	return u, nil
}

func (s *stubUsers) UserVoteTotals(ctx context.Context, userID int64) (int64, int64, error) {
	t := s.totals[userID]
	return t[0], t[1], nil
}

func newFixture() (*Service, *memVotes, *stubUsers) {
	votes := &memVotes{}
	events := &stubEvents{byID: map[int64]*domain.Event{
		1: {ID: 1, InitiatorID: 10, State: domain.StatePublished},
		2: {ID: 2, InitiatorID: 10, State: domain.StatePending},
	}}
	users := &stubUsers{
		byID: map[int64]*domain.User{
			10: {ID: 10},
			20: {ID: 20},
			30: {ID: 30},
		},
		totals: map[int64][2]int64{},
	}
	return New(votes, events, users), votes, users
}

func TestAddVote(t *testing.T) {
	t.Run("like updates event and initiator rating", func(t *testing.T) {
		svc, _, users := newFixture()
		users.totals[10] = [2]int64{1, 0}

		out, err := svc.AddLike(context.Background(), 20, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Likes)
		assert.Equal(t, float64(5), out.Rating)
		assert.Equal(t, float64(5), out.InitiatorRating)
	})

	t.Run("second vote by same user conflicts", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.AddLike(context.Background(), 20, 1)
		require.NoError(t, err)

		_, err = svc.AddDislike(context.Background(), 20, 1)
		assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newFixture()
		_, err := svc.AddLike(context.Background(), 999, 1)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}

func TestRemoveVote(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.AddDislike(context.Background(), 20, 1)
	require.NoError(t, err)

	out, err := svc.RemoveDislike(context.Background(), 20, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Dislikes)
	assert.Equal(t, float64(0), out.Rating)

	_, err = svc.RemoveDislike(context.Background(), 20, 1)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestUserRating(t *testing.T) {
	svc, _, users := newFixture()

	cases := []struct {
		name     string
		likes    int64
		dislikes int64
		want     float64
	}{
		{"no votes", 0, 0, 0},
		{"only likes", 3, 0, 5},
		{"only dislikes", 0, 4, 0},
		{"balanced", 2, 2, 0},
		{"mixed", 6, 3, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users.totals[10] = [2]int64{tc.likes, tc.dislikes}
			got, err := svc.UserRating(context.Background(), 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListVotes(t *testing.T) {
	t.Run("unpublished event", func(t *testing.T) {
		svc, _, _ := newFixture()
		initiator := int64(10)

		_, err := svc.ListLikes(context.Background(), &initiator, 2)
		assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
	})

	t.Run("stranger cannot list", func(t *testing.T) {
		svc, _, _ := newFixture()
		stranger := int64(30)

		_, err := svc.ListLikes(context.Background(), &stranger, 1)
		assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
	})

	t.Run("privileged caller skips the gate", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.AddLike(context.Background(), 20, 1)
		require.NoError(t, err)

		likes, err := svc.ListLikes(context.Background(), nil, 1)
		require.NoError(t, err)
		assert.Len(t, likes, 1)
	})
}
