package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La exclusión entre escritores del mismo producto la da SELECT ... FOR UPDATE; lock_timeout
// acota la espera y, junto con deadlocks y fallos de serialización, se reporta como domain.ErrConflict.
type TxRunner struct {
	db            TxBeginner
	lockTimeoutMS int
}

// NewTxRunner construye el runner. lockTimeoutMS <= 0 deja el lock_timeout del servidor.
func NewTxRunner(db TxBeginner, lockTimeoutMS int) *TxRunner {
	return &TxRunner{db: db, lockTimeoutMS: lockTimeoutMS}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	products repository.ProductTxRepository,
	movements repository.MovementTxRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classifyTxError(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMS > 0 {
		// SET LOCAL no admite parámetros; set_config con is_local = true es equivalente.
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", strconv.Itoa(r.lockTimeoutMS)+"ms"); err != nil {
			return classifyTxError(fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	if err := fn(ctx, NewProductRepository(tx), NewMovementRepository(tx)); err != nil {
		return classifyTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
