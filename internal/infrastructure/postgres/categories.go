package postgres

import (
	"context"
	"errors"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, c.Name,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrConflictMeta("category name already in use", map[string]string{"name": c.Name})
		}
		return tx.QueryRow(ctx,
			`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name,
		).Scan(&c.ID)
	})
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`, c.Name, c.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrConflictMeta("category name already in use", map[string]string{"name": c.Name})
		}
		ct, err := tx.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound("category not found")
		}
		return nil
	})
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	return r.runTx(ctx, func(tx pgx.Tx) error {
		var used bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM events WHERE category_id = $1)`, id,
		).Scan(&used); err != nil {
			return err
		}
		if used {
			return domain.ErrConflict("category is referenced by events")
		}
		ct, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound("category not found")
		}
		return nil
	})
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM categories ORDER BY id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
