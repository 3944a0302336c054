package category

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type CategoryRepo interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error)
}

type Service struct {
	categories CategoryRepo
}

func New(categories CategoryRepo) *Service {
	return &Service{categories: categories}
}

func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	c, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	c, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.categories.DeleteCategory(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context, from, size int) ([]domain.Category, error) {
	if size <= 0 {
		size = 10
	}
	if from < 0 {
		from = 0
	}
	return s.categories.ListCategories(ctx, from, size)
}
