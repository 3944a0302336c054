package postgres

import (
	"context"
	"errors"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateUser(ctx context.Context, u *domain.User) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, u.Email,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrConflictMeta("email already registered", map[string]string{"email": u.Email})
		}
		return tx.QueryRow(ctx, `
			INSERT INTO users (email, name)
			VALUES ($1, $2)
			RETURNING id
		`, u.Email, u.Name).Scan(&u.ID)
	})
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(ids) > 0 {
		rows, err = r.pool.Query(ctx, `
			SELECT id, email, name
			FROM users
			WHERE id = ANY($1)
			ORDER BY id
			OFFSET $2 LIMIT $3
		`, ids, offset, limit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, email, name
			FROM users
			ORDER BY id
			OFFSET $1 LIMIT $2
		`, offset, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound("user not found")
	}
	return nil
}

// UserVoteTotals sums like/dislike counts across the user's published events.
// Feeds the derived user rating.
func (r *Repository) UserVoteTotals(ctx context.Context, userID int64) (likes, dislikes int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE l.is_like),
			COUNT(*) FILTER (WHERE NOT l.is_like)
		FROM likes l
		JOIN events e ON e.id = l.event_id
		WHERE e.initiator_id = $1 AND e.state = $2
	`, userID, string(domain.StatePublished)).Scan(&likes, &dislikes)
	return likes, dislikes, err
}
