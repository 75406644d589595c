package inventory

import (
	"context"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Un conflicto de escritura detectado al
// confirmar (o por el motor) se devuelve envuelto en domain.ErrConflict para que el caller reintente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		products repository.ProductTxRepository,
		movements repository.MovementTxRepository,
	) error) error
}

// Notifier entrega avisos de stock bajo. Lo implementa notification.UseCase.
type Notifier interface {
	Notify(ctx context.Context, userID, message, kind, link string) (*entity.Notification, error)
}

// ActivityLogger escribe en la bitácora de actividad. Lo implementa activity.UseCase.
type ActivityLogger interface {
	Log(ctx context.Context, actor, action, details string) error
}

// Metrics recibe los eventos del libro de movimientos.
type Metrics interface {
	MovementRecorded(movementType string)
	ConflictRetry()
	ThresholdCrossed()
	SideEffectFailed(kind string)
	Rejected(reason string)
}

// Motivos de rechazo reportados a Metrics.
const (
	RejectValidation        = "validation"
	RejectNotFound          = "not_found"
	RejectInsufficientStock = "insufficient_stock"
	RejectConflict          = "conflict"
	RejectInternal          = "internal"
)

// Tipos de efecto secundario reportados a Metrics.SideEffectFailed.
const (
	SideEffectNotification = "notification"
	SideEffectActivityLog  = "activity_log"
)

// NopMetrics descarta todos los eventos.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string) {}
func (NopMetrics) ConflictRetry()          {}
func (NopMetrics) ThresholdCrossed()       {}
func (NopMetrics) SideEffectFailed(string) {}
func (NopMetrics) Rejected(string)         {}
