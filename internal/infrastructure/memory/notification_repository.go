package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// NotificationRepository implementa repository.NotificationRepository.
type NotificationRepository struct {
	store *Store
}

// NewNotificationRepository construye el repositorio.
func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	s.notifications[n.ID] = &c
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	s := r.store
	s.mu.RLock()
	out := make([]*entity.Notification, 0)
	for _, n := range s.notifications {
		if n.TargetUserID != userID || (unreadOnly && n.Read) {
			continue
		}
		c := *n
		out = append(out, &c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	from, to := page(len(out), limit, offset)
	return out[from:to], nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.TargetUserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.TargetUserID != userID {
		return domain.NotFound("Notificación no encontrada.")
	}
	n.Read = true
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, n := range s.notifications {
		if n.TargetUserID == userID && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}
