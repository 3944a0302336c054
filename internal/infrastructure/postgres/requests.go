package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

const requestColumns = `id, event_id, requester_id, created, state`

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var rq domain.Request
	var state string
	err := row.Scan(&rq.ID, &rq.EventID, &rq.RequesterID, &rq.Created, &state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	rq.State = domain.RequestState(state)
	return &rq, nil
}

// AddRequest creates a participation request. The event row is locked first
// so the capacity check and the active-request check cannot race a
// concurrent confirmation.
func (r *Repository) AddRequest(ctx context.Context, traceID string, userID, eventID int64, now time.Time) (*domain.Request, error) {
	var out *domain.Request
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
		e, err := scanEvent(row)
		if err != nil {
			return err
		}

		if e.InitiatorID == userID {
			return domain.ErrConflict("initiator cannot request participation in own event")
		}
		if e.State != domain.StatePublished {
			return domain.ErrConflict("cannot request participation in an unpublished event")
		}

		var hasActive bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM requests
				WHERE event_id = $1 AND requester_id = $2 AND state = ANY($3)
			)
		`, eventID, userID, []string{string(domain.RequestPending), string(domain.RequestConfirm)},
		).Scan(&hasActive); err != nil {
			return err
		}
		if hasActive {
			return domain.ErrConflict("an active request for this event already exists")
		}

		if e.ParticipantLimit > 0 {
			var confirmed int64
			if err := tx.QueryRow(ctx, `
				SELECT COUNT(*) FROM requests WHERE event_id = $1 AND state = $2
			`, eventID, string(domain.RequestConfirm)).Scan(&confirmed); err != nil {
				return err
			}
			if confirmed >= e.ParticipantLimit {
				return domain.ErrConflictMeta("participant limit reached", map[string]string{
					"reason": "capacity_full",
				})
			}
		}

		rq := &domain.Request{
			EventID:     eventID,
			RequesterID: userID,
			Created:     now.UTC(),
			State:       domain.RequestPending,
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO requests (event_id, requester_id, created, state)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, rq.EventID, rq.RequesterID, rq.Created, string(rq.State)).Scan(&rq.ID); err != nil {
			return err
		}

		out = rq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmRequest confirms one request against the event's participant limit.
// The whole read-check-write, including the auto-rejection cascade, is one
// transaction: a concurrent confirm can never observe partially-rejected
// state or oversell a slot.
func (r *Repository) ConfirmRequest(ctx context.Context, traceID string, initiatorID, eventID, requestID int64) (*domain.ConfirmOutcome, error) {
	var out *domain.ConfirmOutcome
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
		e, err := scanEvent(row)
		if err != nil {
			return err
		}
		if e.InitiatorID != initiatorID {
			return domain.ErrForbidden("only the event initiator can confirm requests")
		}

		rq, err := scanRequest(tx.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, requestID))
		if err != nil {
			return err
		}
		if rq.EventID != eventID {
			return domain.ErrNotFound("request does not belong to this event")
		}

		var confirmed int64
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM requests WHERE event_id = $1 AND state = $2
		`, eventID, string(domain.RequestConfirm)).Scan(&confirmed); err != nil {
			return err
		}

		if err := domain.CheckConfirm(rq.State, e.ParticipantLimit, confirmed); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE requests SET state = $2 WHERE id = $1`, rq.ID, string(domain.RequestConfirm),
		); err != nil {
			return err
		}
		rq.State = domain.RequestConfirm

		res := &domain.ConfirmOutcome{Request: rq}

		if domain.CascadeAfterConfirm(e.ParticipantLimit, confirmed) {
			res.LimitReached = true

			rows, err := tx.Query(ctx, `
				UPDATE requests SET state = $3
				WHERE event_id = $1 AND state = $2 AND id <> $4
				RETURNING id
			`, eventID, string(domain.RequestPending), string(domain.RequestReject), rq.ID)
			if err != nil {
				return err
			}
			for rows.Next() {
				var id int64
				if err := rows.Scan(&id); err != nil {
					rows.Close()
					return err
				}
				res.AutoRejected = append(res.AutoRejected, id)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return err
			}

			payload := map[string]any{
				"event_id":          e.ID,
				"participant_limit": e.ParticipantLimit,
				"auto_rejected":     res.AutoRejected,
			}
			if err := insertOutbox(ctx, tx, traceID, "event.capacity_reached", payload); err != nil {
				return err
			}
		}

		payload := map[string]any{
			"event_id":     e.ID,
			"request_id":   rq.ID,
			"requester_id": rq.RequesterID,
		}
		if err := insertOutbox(ctx, tx, traceID, "request.confirmed", payload); err != nil {
			return err
		}

		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) RejectRequest(ctx context.Context, initiatorID, eventID, requestID int64) (*domain.Request, error) {
	var out *domain.Request
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
		e, err := scanEvent(row)
		if err != nil {
			return err
		}
		if e.InitiatorID != initiatorID {
			return domain.ErrForbidden("only the event initiator can reject requests")
		}

		rq, err := scanRequest(tx.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, requestID))
		if err != nil {
			return err
		}
		if rq.EventID != eventID {
			return domain.ErrNotFound("request does not belong to this event")
		}
		if rq.State == domain.RequestConfirm {
			return domain.ErrValidation("a confirmed request cannot be rejected")
		}

		if _, err := tx.Exec(ctx,
			`UPDATE requests SET state = $2 WHERE id = $1`, rq.ID, string(domain.RequestReject),
		); err != nil {
			return err
		}
		rq.State = domain.RequestReject
		out = rq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelOwnRequest moves the caller's request to CANCEL; no state precondition.
func (r *Repository) CancelOwnRequest(ctx context.Context, userID, requestID int64) (*domain.Request, error) {
	var out *domain.Request
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		rq, err := scanRequest(tx.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, requestID))
		if err != nil {
			return err
		}
		if rq.RequesterID != userID {
			return domain.ErrForbidden("only the requester can cancel the request")
		}

		if _, err := tx.Exec(ctx,
			`UPDATE requests SET state = $2 WHERE id = $1`, rq.ID, string(domain.RequestCancel),
		); err != nil {
			return err
		}
		rq.State = domain.RequestCancel
		out = rq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListRequestsByRequester(ctx context.Context, userID int64) ([]domain.Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *Repository) ListRequestsForEvent(ctx context.Context, eventID int64) ([]domain.Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests
		WHERE event_id = $1
		ORDER BY created ASC, id ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]domain.Request, error) {
	defer rows.Close()
	var out []domain.Request
	for rows.Next() {
		rq, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rq)
	}
	return out, rows.Err()
}
