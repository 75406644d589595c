package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo registro de categorías sobre PostgreSQL.
type CategoryRepo struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (nombre, descripcion, created_at) VALUES ($1, $2, $3)`,
		c.Name, c.Description, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Get(ctx context.Context, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.db.QueryRow(ctx,
		`SELECT nombre, descripcion, created_at FROM categories WHERE nombre = $1`, name,
	).Scan(&c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT nombre, descripcion, created_at FROM categories ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Rename actualiza registro y productos en una sola sentencia. Si la categoría solo existía en
// productos, queda registrada con el nombre nuevo.
func (r *CategoryRepo) Rename(ctx context.Context, oldName, newName string, at time.Time) (int, error) {
	query := `
		WITH c AS (
			INSERT INTO categories (nombre, descripcion, created_at)
			SELECT $2, COALESCE((SELECT descripcion FROM categories WHERE nombre = $1), ''), $3
			ON CONFLICT (nombre) DO NOTHING
			RETURNING 1
		), d AS (
			DELETE FROM categories WHERE nombre = $1 AND $1 <> $2 RETURNING 1
		), p AS (
			UPDATE products SET categoria = $2, updated_at = $3 WHERE categoria = $1 RETURNING 1
		)
		SELECT (SELECT COUNT(*) FROM p)`
	var n int
	if err := r.db.QueryRow(ctx, query, oldName, newName, at).Scan(&n); err != nil {
		return 0, fmt.Errorf("rename category: %w", err)
	}
	return n, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE nombre = $1`, name)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Categoría no encontrada")
	}
	return nil
}
