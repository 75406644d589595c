package memory

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository (solo lectura; las escrituras
// ocurren dentro de TxRunner).
type MovementRepository struct {
	store *Store
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *MovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	s := r.store
	s.mu.RLock()
	out := make([]*entity.Movement, 0, len(s.movementOrder))
	for _, id := range s.movementOrder {
		m := s.movements[id]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		out = append(out, copyMovement(m))
	}
	s.mu.RUnlock()

	sortMovementsDesc(out)
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

// ListByProduct devuelve los movimientos del producto en orden de confirmación.
func (r *MovementRepository) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Movement
	for _, id := range s.movementOrder {
		if m := s.movements[id]; m.ProductID == productID {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

func (r *MovementRepository) Stats(_ context.Context, since time.Time) (repository.MovementStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st repository.MovementStats
	for _, m := range s.movements {
		st.Total++
		switch m.Type {
		case entity.MovementTypeEntrada:
			st.Entradas++
		case entity.MovementTypeSalida:
			st.Salidas++
		}
		if !m.Date.Before(since) {
			st.Recent++
		}
	}
	return st, nil
}
