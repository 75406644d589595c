package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// ActivityLogFilter criterios de consulta de la bitácora.
type ActivityLogFilter struct {
	Actor  string
	Action string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ActivityLogRepository define el puerto de persistencia de la bitácora (solo inserción y lectura).
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]*entity.ActivityLog, error)
}
