package event

import (
	"context"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	CreateEvent(ctx context.Context, e *domain.Event) error
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	UpdateEvent(ctx context.Context, e *domain.Event) error
	ModerateEvent(ctx context.Context, traceID string, eventID int64, fn func(e *domain.Event) (routingKey string, err error)) (*domain.Event, error)

	ListEventsByInitiator(ctx context.Context, initiatorID int64, offset, limit int) ([]*domain.Event, error)
	ListEventsByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error)
	SearchPublicEvents(ctx context.Context, f PublicFilter) ([]*domain.Event, error)
	SearchAdminEvents(ctx context.Context, f AdminFilter) ([]*domain.Event, error)

	ConfirmedCount(ctx context.Context, eventID int64) (int64, error)
	ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	VoteCounts(ctx context.Context, eventID int64) (domain.VoteTotals, error)
	VoteCountsBatch(ctx context.Context, eventIDs []int64) (map[int64]domain.VoteTotals, error)
}

type CategoryRepo interface {
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
}

type UserRepo interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// StatsClient is the collaborator interface to the statistics service.
// RecordHit is fire-and-forget; FetchViews errors degrade to zero views.
type StatsClient interface {
	RecordHit(ctx context.Context, uri, ip string)
	FetchViews(ctx context.Context, uris []string) (map[string]int64, error)
}

// ViewsCache shields the stats service from repeated reads of hot events.
type ViewsCache interface {
	GetViews(ctx context.Context, eventID int64) (int64, error)
	SetViews(ctx context.Context, eventID, views int64) error
}

type Sort string

const (
	SortEventDate Sort = "EVENT_DATE"
	SortViews     Sort = "VIEWS"
	SortRating    Sort = "RATING"
)

// PublicFilter parameterizes the public event search. An absent date range
// defaults to "upcoming only" (event_date > now).
type PublicFilter struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          Sort
	From          int
	Size          int
}

type AdminFilter struct {
	Users      []int64
	States     []domain.EventState
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}
