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

var (
	_ repository.MovementRepository   = (*MovementRepo)(nil)
	_ repository.MovementTxRepository = (*MovementRepo)(nil)
)

const movementColumns = `id, product_id, type, quantity, reason, observations, user_id, user_name, date,
	stock_anterior, stock_nuevo, product_nombre, product_sku, COALESCE(idempotency_key, '')`

// MovementRepo persistencia del libro de movimientos. Solo inserta y lee.
type MovementRepo struct {
	db DBTX
}

// NewMovementRepository construye el repositorio. db puede ser el pool o una pgx.Tx.
func NewMovementRepository(db DBTX) *MovementRepo {
	return &MovementRepo{db: db}
}

// Create inserta el movimiento. Clave de idempotencia repetida: domain.ErrDuplicate.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reason, observations, user_id, user_name, date,
			stock_anterior, stock_nuevo, product_nombre, product_sku, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Observations, m.ActorID, m.ActorName, m.Date,
		m.StockBefore, m.StockAfter, m.ProductSnapshot.Name, m.ProductSnapshot.SKU, m.IdempotencyKey,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento. (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
}

// GetByIdempotencyKey busca el movimiento registrado con key. (nil, nil) si no existe.
func (r *MovementRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.Movement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movements WHERE idempotency_key = $1`, key)
}

func (r *MovementRepo) getOne(ctx context.Context, query, arg string) (*entity.Movement, error) {
	m, err := scanMovement(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var w whereBuilder
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.From != nil {
		w.add("date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("date <= $%d", *f.To)
	}
	query := `SELECT ` + movementColumns + ` FROM movements` + w.sql() + ` ORDER BY date DESC, seq DESC`
	query += w.page(f.Limit, f.Offset)
	return r.query(ctx, query, w.args...)
}

// ListByProduct devuelve el historial completo de un producto en orden de registro.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM movements WHERE product_id = $1 ORDER BY date, seq`, productID)
}

// Stats agrega el libro completo en una sola lectura.
func (r *MovementRepo) Stats(ctx context.Context, since time.Time) (repository.MovementStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE type = 'entrada'),
			COUNT(*) FILTER (WHERE type = 'salida'),
			COUNT(*) FILTER (WHERE date >= $1)
		FROM movements`
	var st repository.MovementStats
	if err := r.db.QueryRow(ctx, query, since).Scan(&st.Total, &st.Entradas, &st.Salidas, &st.Recent); err != nil {
		return repository.MovementStats{}, fmt.Errorf("movement stats: %w", err)
	}
	return st, nil
}

func (r *MovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Observations, &m.ActorID, &m.ActorName, &m.Date,
		&m.StockBefore, &m.StockAfter, &m.ProductSnapshot.Name, &m.ProductSnapshot.SKU, &m.IdempotencyKey,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
