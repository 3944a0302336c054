package postgres

import (
	"context"
	"errors"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, annotation, description, category_id, event_date, paid,
       participant_limit, request_moderation, title, initiator_id, state,
       created_on, published_on`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var state string
	err := row.Scan(
		&e.ID, &e.Annotation, &e.Description, &e.CategoryID, &e.EventDate, &e.Paid,
		&e.ParticipantLimit, &e.RequestModeration, &e.Title, &e.InitiatorID, &state,
		&e.CreatedOn, &e.PublishedOn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	if !e.State.Valid() {
		return nil, errors.New("invalid event state in db")
	}
	return &e, nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) CreateEvent(ctx context.Context, e *domain.Event) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO events (annotation, description, category_id, event_date, paid,
		                    participant_limit, request_moderation, title, initiator_id,
		                    state, created_on, published_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, e.Annotation, e.Description, e.CategoryID, e.EventDate, e.Paid,
		e.ParticipantLimit, e.RequestModeration, e.Title, e.InitiatorID,
		string(e.State), e.CreatedOn, e.PublishedOn,
	).Scan(&e.ID)
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *Repository) UpdateEvent(ctx context.Context, e *domain.Event) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE events
		SET annotation = $2, description = $3, category_id = $4, event_date = $5,
		    paid = $6, participant_limit = $7, request_moderation = $8, title = $9,
		    state = $10, published_on = $11
		WHERE id = $1
	`, e.ID, e.Annotation, e.Description, e.CategoryID, e.EventDate,
		e.Paid, e.ParticipantLimit, e.RequestModeration, e.Title,
		string(e.State), e.PublishedOn)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}

// ModerateEvent runs a state transition as one atomic unit: the event row is
// locked, fn applies the domain state machine, the result is persisted and an
// outbox notification recorded when fn names a routing key.
func (r *Repository) ModerateEvent(ctx context.Context, traceID string, eventID int64, fn func(e *domain.Event) (routingKey string, err error)) (*domain.Event, error) {
	var out *domain.Event
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
		e, err := scanEvent(row)
		if err != nil {
			return err
		}

		routingKey, err := fn(e)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE events SET state = $2, published_on = $3 WHERE id = $1
		`, e.ID, string(e.State), e.PublishedOn)
		if err != nil {
			return err
		}

		if routingKey != "" {
			payload := map[string]any{
				"event_id":     e.ID,
				"initiator_id": e.InitiatorID,
				"state":        string(e.State),
				"event_date":   e.EventDate,
			}
			if err := insertOutbox(ctx, tx, traceID, routingKey, payload); err != nil {
				return err
			}
		}

		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListEventsByInitiator(ctx context.Context, initiatorID int64, offset, limit int) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE initiator_id = $1
		ORDER BY created_on DESC, id DESC
		OFFSET $2 LIMIT $3
	`, initiatorID, offset, limit)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *Repository) ListEventsByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ConfirmedCount is always computed fresh; no persisted counter is trusted.
func (r *Repository) ConfirmedCount(ctx context.Context, eventID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM requests WHERE event_id = $1 AND state = $2
	`, eventID, string(domain.RequestConfirm)).Scan(&n)
	return n, err
}

func (r *Repository) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, COUNT(*)
		FROM requests
		WHERE event_id = ANY($1) AND state = $2
		GROUP BY event_id
	`, eventIDs, string(domain.RequestConfirm))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *Repository) VoteCounts(ctx context.Context, eventID int64) (domain.VoteTotals, error) {
	var vt domain.VoteTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_like), COUNT(*) FILTER (WHERE NOT is_like)
		FROM likes WHERE event_id = $1
	`, eventID).Scan(&vt.Likes, &vt.Dislikes)
	return vt, err
}

func (r *Repository) VoteCountsBatch(ctx context.Context, eventIDs []int64) (map[int64]domain.VoteTotals, error) {
	out := make(map[int64]domain.VoteTotals, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, COUNT(*) FILTER (WHERE is_like), COUNT(*) FILTER (WHERE NOT is_like)
		FROM likes
		WHERE event_id = ANY($1)
		GROUP BY event_id
	`, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var vt domain.VoteTotals
		if err := rows.Scan(&id, &vt.Likes, &vt.Dislikes); err != nil {
			return nil, err
		}
		out[id] = vt
	}
	return out, rows.Err()
}
