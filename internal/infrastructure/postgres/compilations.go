package postgres

import (
	"context"
	"errors"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateCompilation(ctx context.Context, c *domain.Compilation, eventIDs []int64) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id
		`, c.Title, c.Pinned).Scan(&c.ID); err != nil {
			return err
		}
		for _, eid := range eventIDs {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eid,
			).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domain.ErrNotFound("event not found")
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)
			`, c.ID, eid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) DeleteCompilation(ctx context.Context, id int64) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM compilation_events WHERE compilation_id = $1`, id); err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound("compilation not found")
		}
		return nil
	})
}

func (r *Repository) GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error) {
	var c domain.Compilation
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Pinned)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("compilation not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]domain.Compilation, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if pinned != nil {
		rows, err = r.pool.Query(ctx, `
			SELECT id, title, pinned FROM compilations
			WHERE pinned = $1 ORDER BY id OFFSET $2 LIMIT $3
		`, *pinned, offset, limit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, title, pinned FROM compilations
			ORDER BY id OFFSET $1 LIMIT $2
		`, offset, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Compilation
	for rows.Next() {
		var c domain.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CompilationEventIDs(ctx context.Context, compilationID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id FROM compilation_events
		WHERE compilation_id = $1 ORDER BY event_id
	`, compilationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repository) AddEventToCompilation(ctx context.Context, compilationID, eventID int64) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM compilations WHERE id = $1)`, compilationID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound("compilation not found")
		}
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound("event not found")
		}
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM compilation_events WHERE compilation_id = $1 AND event_id = $2)
		`, compilationID, eventID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrConflict("event already in compilation")
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)
		`, compilationID, eventID)
		return err
	})
}

func (r *Repository) RemoveEventFromCompilation(ctx context.Context, compilationID, eventID int64) error {
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM compilation_events WHERE compilation_id = $1 AND event_id = $2
	`, compilationID, eventID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound("event not in compilation")
	}
	return nil
}

func (r *Repository) SetCompilationPinned(ctx context.Context, compilationID int64, pinned bool) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE compilations SET pinned = $2 WHERE id = $1`, compilationID, pinned)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound("compilation not found")
	}
	return nil
}
