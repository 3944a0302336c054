package rating

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

// VoteRepo runs the duplicate check and the insert in one transaction under
// the event row lock.
type VoteRepo interface {
	AddVote(ctx context.Context, userID, eventID int64, isLike bool) (*domain.Like, error)
	RemoveVote(ctx context.Context, userID, eventID int64, isLike bool) error
	ListVotes(ctx context.Context, eventID int64, isLike bool) ([]domain.Like, error)
	VoteCounts(ctx context.Context, eventID int64) (domain.VoteTotals, error)
}

type EventRepo interface {
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}

type UserRepo interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UserVoteTotals(ctx context.Context, userID int64) (likes, dislikes int64, err error)
}

type Service struct {
	votes  VoteRepo
	events EventRepo
	users  UserRepo
}

func New(votes VoteRepo, events EventRepo, users UserRepo) *Service {
	return &Service{votes: votes, events: events, users: users}
}

// EventRating is the per-event result of a vote mutation, with the
// initiator's refreshed aggregate.
type EventRating struct {
	EventID         int64
	Likes           int64
	Dislikes        int64
	Rating          float64
	InitiatorRating float64
}

func (s *Service) AddLike(ctx context.Context, userID, eventID int64) (*EventRating, error) {
	return s.addVote(ctx, userID, eventID, true)
}

func (s *Service) AddDislike(ctx context.Context, userID, eventID int64) (*EventRating, error) {
	return s.addVote(ctx, userID, eventID, false)
}

func (s *Service) addVote(ctx context.Context, userID, eventID int64, isLike bool) (*EventRating, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	// Publication-state, authorship and exclusivity checks happen inside
	// the repository transaction; two concurrent votes cannot both pass.
	if _, err := s.votes.AddVote(ctx, userID, eventID, isLike); err != nil {
		return nil, err
	}

	return s.ratingAfterMutation(ctx, eventID)
}

// RemoveLike and RemoveDislike let a user retract their own vote.
func (s *Service) RemoveLike(ctx context.Context, userID, eventID int64) (*EventRating, error) {
	return s.removeVote(ctx, userID, eventID, true)
}

func (s *Service) RemoveDislike(ctx context.Context, userID, eventID int64) (*EventRating, error) {
	return s.removeVote(ctx, userID, eventID, false)
}

func (s *Service) removeVote(ctx context.Context, userID, eventID int64, isLike bool) (*EventRating, error) {
	if err := s.votes.RemoveVote(ctx, userID, eventID, isLike); err != nil {
		return nil, err
	}
	return s.ratingAfterMutation(ctx, eventID)
}

func (s *Service) ratingAfterMutation(ctx context.Context, eventID int64) (*EventRating, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.VoteCounts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	initiatorRating, err := s.UserRating(ctx, e.InitiatorID)
	if err != nil {
		return nil, err
	}

	return &EventRating{
		EventID:         eventID,
		Likes:           votes.Likes,
		Dislikes:        votes.Dislikes,
		Rating:          domain.Rating(votes.Likes, votes.Dislikes),
		InitiatorRating: initiatorRating,
	}, nil
}

// UserRating derives the aggregate score from the vote totals across the
// user's published events, using the same formula as per-event ratings.
func (s *Service) UserRating(ctx context.Context, userID int64) (float64, error) {
	likes, dislikes, err := s.users.UserVoteTotals(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.Rating(likes, dislikes), nil
}

// ListLikes returns an event's likes. A nil requester is privileged (admin);
// otherwise only the initiator of a published event may look.
func (s *Service) ListLikes(ctx context.Context, requesterID *int64, eventID int64) ([]domain.Like, error) {
	return s.listVotes(ctx, requesterID, eventID, true)
}

func (s *Service) ListDislikes(ctx context.Context, requesterID *int64, eventID int64) ([]domain.Like, error) {
	return s.listVotes(ctx, requesterID, eventID, false)
}

func (s *Service) listVotes(ctx context.Context, requesterID *int64, eventID int64, isLike bool) ([]domain.Like, error) {
	e, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != domain.StatePublished {
		return nil, domain.ErrForbidden("an unpublished event has no votes to list")
	}
	if requesterID != nil && e.InitiatorID != *requesterID {
		return nil, domain.ErrForbidden("only the event initiator can list its votes")
	}
	return s.votes.ListVotes(ctx, eventID, isLike)
}
