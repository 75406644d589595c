package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// ActivityLogRepository implementa repository.ActivityLogRepository.
type ActivityLogRepository struct {
	store *Store
}

// NewActivityLogRepository construye el repositorio.
func NewActivityLogRepository(store *Store) *ActivityLogRepository {
	return &ActivityLogRepository{store: store}
}

func (r *ActivityLogRepository) Create(_ context.Context, e *entity.ActivityLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.logs = append(s.logs, &c)
	return nil
}

func (r *ActivityLogRepository) List(_ context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLog, error) {
	s := r.store
	s.mu.RLock()
	out := make([]*entity.ActivityLog, 0, len(s.logs))
	for _, e := range s.logs {
		if f.Actor != "" && e.Actor != f.Actor {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Timestamp.After(*f.To) {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}
