package postgres

import (
	"context"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AddVote inserts a like or dislike. The event row is locked before the
// mutual-exclusivity check so two concurrent submissions cannot both pass it.
func (r *Repository) AddVote(ctx context.Context, userID, eventID int64, isLike bool) (*domain.Like, error) {
	var out *domain.Like
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
		e, err := scanEvent(row)
		if err != nil {
			return err
		}

		if e.State != domain.StatePublished {
			return domain.ErrForbidden("only a published event can be rated")
		}
		if e.InitiatorID == userID {
			return domain.ErrForbidden("initiator cannot rate own event")
		}

		var voted bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM likes WHERE event_id = $1 AND user_id = $2)
		`, eventID, userID).Scan(&voted); err != nil {
			return err
		}
		if voted {
			return domain.ErrConflict("user already rated this event")
		}

		l := &domain.Like{UserID: userID, EventID: eventID, IsLike: isLike}
		if err := tx.QueryRow(ctx, `
			INSERT INTO likes (user_id, event_id, is_like)
			VALUES ($1, $2, $3)
			RETURNING id
		`, l.UserID, l.EventID, l.IsLike).Scan(&l.ID); err != nil {
			return err
		}

		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveVote retracts the caller's own like or dislike.
func (r *Repository) RemoveVote(ctx context.Context, userID, eventID int64, isLike bool) error {
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM likes WHERE user_id = $1 AND event_id = $2 AND is_like = $3
	`, userID, eventID, isLike)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound("vote not found")
	}
	return nil
}

func (r *Repository) ListVotes(ctx context.Context, eventID int64, isLike bool) ([]domain.Like, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, event_id, is_like
		FROM likes
		WHERE event_id = $1 AND is_like = $2
		ORDER BY id
	`, eventID, isLike)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Like
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.EventID, &l.IsLike); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
