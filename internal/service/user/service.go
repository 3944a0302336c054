package user

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserVoteTotals(ctx context.Context, userID int64) (likes, dislikes int64, err error)
}

type Service struct {
	users UserRepo
}

func New(users UserRepo) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, email, name string) (*domain.UserView, error) {
	u, err := domain.NewUser(email, name)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return &domain.UserView{User: *u}, nil
}

func (s *Service) List(ctx context.Context, ids []int64, from, size int) ([]domain.UserView, error) {
	if size <= 0 {
		size = 10
	}
	if from < 0 {
		from = 0
	}
	users, err := s.users.ListUsers(ctx, ids, from, size)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserView, len(users))
	for i, u := range users {
		likes, dislikes, err := s.users.UserVoteTotals(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out[i] = domain.UserView{User: u, Rating: domain.Rating(likes, dislikes)}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}
