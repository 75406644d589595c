package repository

import (
	"context"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead devuelve domain.ErrNotFound si la notificación no existe o no pertenece al usuario.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
