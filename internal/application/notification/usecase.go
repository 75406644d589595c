// Package notification contiene los casos de uso de avisos a usuarios (campana de notificaciones).
package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// UseCase crea y consulta notificaciones.
type UseCase struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Notify crea una notificación no leída para userID.
func (uc *UseCase) Notify(ctx context.Context, userID, message, kind, link string) (*entity.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.InvalidInput("destinatario requerido")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.InvalidInput("mensaje requerido")
	}
	if kind == "" {
		kind = entity.NotificationKindInfo
	}
	if !entity.IsValidNotificationKind(kind) {
		return nil, domain.InvalidInput("tipo de notificación inválido")
	}
	n := &entity.Notification{
		ID:           uuid.New().String(),
		TargetUserID: userID,
		Message:      message,
		Kind:         kind,
		Link:         link,
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListForUser devuelve las notificaciones del usuario, más recientes primero.
func (uc *UseCase) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, domain.InvalidInput("usuario requerido")
	}
	return uc.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// UnreadCount número de notificaciones sin leer del usuario.
func (uc *UseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	return uc.repo.CountUnread(ctx, userID)
}

// MarkRead marca una notificación propia como leída.
func (uc *UseCase) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" {
		return domain.InvalidInput("id requerido")
	}
	return uc.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marca como leídas todas las notificaciones del usuario y devuelve cuántas cambiaron.
func (uc *UseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}
