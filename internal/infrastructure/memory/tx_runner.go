package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// TxRunner implementa inventory.TxRunner con control optimista de concurrencia.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

type stockWrite struct {
	actual int
	estado string
	at     time.Time
}

// tx acumula lecturas (con su versión) y escrituras; nada se aplica hasta el commit.
type tx struct {
	store     *Store
	reads     map[string]uint64
	writes    map[string]stockWrite
	movements []*entity.Movement
}

// Run ejecuta fn y, si no falla, confirma validando que ningún producto leído haya cambiado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	products repository.ProductTxRepository,
	movements repository.MovementTxRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{
		store:  r.store,
		reads:  make(map[string]uint64),
		writes: make(map[string]stockWrite),
	}
	if err := fn(ctx, (*txProducts)(t), (*txMovements)(t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

func (t *tx) commit() error {
	if hook := t.store.beforeCommit; hook != nil {
		hook()
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, version := range t.reads {
		rec, ok := s.products[id]
		if !ok || rec.version != version {
			return fmt.Errorf("%w: el producto %s cambió durante la transacción", domain.ErrConflict, id)
		}
	}
	for _, m := range t.movements {
		if m.IdempotencyKey == "" {
			continue
		}
		if _, exists := s.byIdemKey[m.IdempotencyKey]; exists {
			return fmt.Errorf("%w: clave de idempotencia %q confirmada por otra transacción", domain.ErrConflict, m.IdempotencyKey)
		}
	}
	for id := range t.writes {
		if _, read := t.reads[id]; !read {
			return fmt.Errorf("memory: escritura sin lectura previa del producto %s", id)
		}
	}

	for id, w := range t.writes {
		rec := s.products[id]
		at := w.at
		rec.product.Stock.Actual = w.actual
		rec.product.Estado = w.estado
		rec.product.FechaUltimoMovimiento = &at
		rec.product.UpdatedAt = at
		rec.version++
	}
	for _, m := range t.movements {
		s.movements[m.ID] = copyMovement(m)
		s.movementOrder = append(s.movementOrder, m.ID)
		if m.IdempotencyKey != "" {
			s.byIdemKey[m.IdempotencyKey] = m.ID
		}
	}
	return nil
}

type txProducts tx

func (t *txProducts) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	s := t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	t.reads[id] = rec.version
	p := copyProduct(rec.product)
	if w, pending := t.writes[id]; pending {
		p.Stock.Actual, p.Estado = w.actual, w.estado
	}
	return p, nil
}

func (t *txProducts) UpdateStock(_ context.Context, id string, actual int, estado string, at time.Time) error {
	if actual < 0 {
		return domain.InvalidInput("el stock no puede quedar negativo")
	}
	t.writes[id] = stockWrite{actual: actual, estado: estado, at: at}
	return nil
}

type txMovements tx

func (t *txMovements) Create(_ context.Context, m *entity.Movement) error {
	if m.IdempotencyKey != "" {
		for _, pending := range t.movements {
			if pending.IdempotencyKey == m.IdempotencyKey {
				return fmt.Errorf("%w: clave de idempotencia %q", domain.ErrDuplicate, m.IdempotencyKey)
			}
		}
		t.store.mu.RLock()
		_, exists := t.store.byIdemKey[m.IdempotencyKey]
		t.store.mu.RUnlock()
		if exists {
			return fmt.Errorf("%w: clave de idempotencia %q", domain.ErrDuplicate, m.IdempotencyKey)
		}
	}
	t.movements = append(t.movements, copyMovement(m))
	return nil
}

func (t *txMovements) GetByIdempotencyKey(_ context.Context, key string) (*entity.Movement, error) {
	s := t.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byIdemKey[key]
	if !ok {
		return nil, nil
	}
	return copyMovement(s.movements[id]), nil
}
