package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/event"
)

const dialectPostgres = "postgres"

var errBuildingQuery = errors.New("building search query failed")

var eventSelectCols = []any{
	"id", "annotation", "description", "category_id", "event_date", "paid",
	"participant_limit", "request_moderation", "title", "initiator_id", "state",
	"created_on", "published_on",
}

// ratingExpr mirrors the rating formula over the likes table: all-likes pins
// the score at 5, no likes (or a tie) yields 0, otherwise the raw ratio.
var ratingExpr = goqu.L(`(SELECT CASE
	WHEN COUNT(*) FILTER (WHERE is_like) > 0 AND COUNT(*) FILTER (WHERE NOT is_like) = 0 THEN 5::float
	WHEN COUNT(*) FILTER (WHERE is_like) = 0 OR COUNT(*) FILTER (WHERE is_like) = COUNT(*) FILTER (WHERE NOT is_like) THEN 0::float
	ELSE (COUNT(*) FILTER (WHERE is_like))::float / COUNT(*) FILTER (WHERE NOT is_like)
END FROM likes WHERE likes.event_id = events.id)`)

// SearchPublicEvents builds the public search predicate dynamically. Only
// PUBLISHED events are visible. A rating ordering is resolved here so the
// requested page is the global top slice; views ordering is applied by the
// service on the projected page since view counts live in the statistics
// service.
func (r *Repository) SearchPublicEvents(ctx context.Context, f event.PublicFilter) ([]*domain.Event, error) {
	exprs := []goqu.Expression{
		goqu.C("state").Eq(string(domain.StatePublished)),
	}

	if f.Text != "" {
		pattern := "%" + f.Text + "%"
		exprs = append(exprs, goqu.Or(
			goqu.C("annotation").ILike(pattern),
			goqu.C("description").ILike(pattern),
		))
	}
	if len(f.Categories) > 0 {
		exprs = append(exprs, goqu.C("category_id").In(f.Categories))
	}
	if f.Paid != nil {
		exprs = append(exprs, goqu.C("paid").Eq(*f.Paid))
	}
	if f.RangeStart != nil {
		exprs = append(exprs, goqu.C("event_date").Gt(f.RangeStart.UTC()))
	}
	if f.RangeEnd != nil {
		exprs = append(exprs, goqu.C("event_date").Lte(f.RangeEnd.UTC()))
	}
	if f.OnlyAvailable {
		exprs = append(exprs, goqu.Or(
			goqu.C("participant_limit").Eq(0),
			goqu.L(`(SELECT COUNT(*) FROM requests r WHERE r.event_id = events.id AND r.state = 'CONFIRM') < participant_limit`),
		))
	}

	order := []exp.OrderedExpression{goqu.I("event_date").Asc(), goqu.I("id").Asc()}
	if f.Sort == event.SortRating {
		order = append([]exp.OrderedExpression{ratingExpr.Desc()}, order...)
	}

	stmt := goqu.Dialect(dialectPostgres).
		From("events").
		Select(eventSelectCols...).
		Where(exprs...).
		Order(order...).
		Offset(uint(f.From)).
		Limit(uint(f.Size))

	return r.runSearch(ctx, stmt)
}

func (r *Repository) SearchAdminEvents(ctx context.Context, f event.AdminFilter) ([]*domain.Event, error) {
	exprs := make([]goqu.Expression, 0, 5)

	if len(f.Users) > 0 {
		exprs = append(exprs, goqu.C("initiator_id").In(f.Users))
	}
	if len(f.States) > 0 {
		states := make([]string, len(f.States))
		for i, s := range f.States {
			states[i] = string(s)
		}
		exprs = append(exprs, goqu.C("state").In(states))
	}
	if len(f.Categories) > 0 {
		exprs = append(exprs, goqu.C("category_id").In(f.Categories))
	}
	if f.RangeStart != nil {
		exprs = append(exprs, goqu.C("event_date").Gt(f.RangeStart.UTC()))
	}
	if f.RangeEnd != nil {
		exprs = append(exprs, goqu.C("event_date").Lte(f.RangeEnd.UTC()))
	}

	stmt := goqu.Dialect(dialectPostgres).
		From("events").
		Select(eventSelectCols...).
		Where(exprs...).
		Order(goqu.I("id").Asc()).
		Offset(uint(f.From)).
		Limit(uint(f.Size))

	return r.runSearch(ctx, stmt)
}

func (r *Repository) runSearch(ctx context.Context, stmt *goqu.SelectDataset) ([]*domain.Event, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(errBuildingQuery, toSQLErr)
	}

	rows, err := r.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}
