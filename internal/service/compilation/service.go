package compilation

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type CompilationRepo interface {
	CreateCompilation(ctx context.Context, c *domain.Compilation, eventIDs []int64) error
	DeleteCompilation(ctx context.Context, id int64) error
	GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error)
	ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]domain.Compilation, error)
	CompilationEventIDs(ctx context.Context, compilationID int64) ([]int64, error)
	AddEventToCompilation(ctx context.Context, compilationID, eventID int64) error
	RemoveEventFromCompilation(ctx context.Context, compilationID, eventID int64) error
	SetCompilationPinned(ctx context.Context, compilationID int64, pinned bool) error
}

// EventProjector resolves member events into read views; membership changes
// themselves never touch event state.
type EventProjector interface {
	ProjectByIDs(ctx context.Context, ids []int64) ([]domain.EventView, error)
}

type Service struct {
	compilations CompilationRepo
	events       EventProjector
}

func New(compilations CompilationRepo, events EventProjector) *Service {
	return &Service{compilations: compilations, events: events}
}

func (s *Service) Create(ctx context.Context, title string, pinned bool, eventIDs []int64) (*domain.CompilationView, error) {
	c, err := domain.NewCompilation(title, pinned)
	if err != nil {
		return nil, err
	}
	if err := s.compilations.CreateCompilation(ctx, c, eventIDs); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.compilations.DeleteCompilation(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.CompilationView, error) {
	c, err := s.compilations.GetCompilation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *Service) List(ctx context.Context, pinned *bool, from, size int) ([]domain.CompilationView, error) {
	if size <= 0 {
		size = 10
	}
	if from < 0 {
		from = 0
	}
	comps, err := s.compilations.ListCompilations(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CompilationView, 0, len(comps))
	for i := range comps {
		v, err := s.view(ctx, &comps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *Service) AddEvent(ctx context.Context, compilationID, eventID int64) error {
	return s.compilations.AddEventToCompilation(ctx, compilationID, eventID)
}

func (s *Service) RemoveEvent(ctx context.Context, compilationID, eventID int64) error {
	return s.compilations.RemoveEventFromCompilation(ctx, compilationID, eventID)
}

func (s *Service) Pin(ctx context.Context, compilationID int64) error {
	return s.compilations.SetCompilationPinned(ctx, compilationID, true)
}

func (s *Service) Unpin(ctx context.Context, compilationID int64) error {
	return s.compilations.SetCompilationPinned(ctx, compilationID, false)
}

func (s *Service) view(ctx context.Context, c *domain.Compilation) (*domain.CompilationView, error) {
	ids, err := s.compilations.CompilationEventIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ProjectByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &domain.CompilationView{Compilation: *c, Events: events}, nil
}
