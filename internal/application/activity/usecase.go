// Package activity escribe y consulta la bitácora de actividad del sistema.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// ListInput filtros de la bitácora. Las fechas son días locales YYYY-MM-DD.
type ListInput struct {
	Actor     string
	Action    string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// UseCase bitácora de actividad.
type UseCase struct {
	repo repository.ActivityLogRepository
	loc  *time.Location
	now  func() time.Time
}

// NewUseCase construye el caso de uso. loc nil usa la zona local.
func NewUseCase(repo repository.ActivityLogRepository, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{repo: repo, loc: loc, now: time.Now}
}

// Log agrega una entrada a la bitácora.
func (uc *UseCase) Log(ctx context.Context, actor, action, details string) error {
	if action == "" {
		return domain.InvalidInput("acción requerida")
	}
	return uc.repo.Create(ctx, &entity.ActivityLog{
		ID:        uuid.New().String(),
		Actor:     actor,
		Action:    action,
		Details:   details,
		Timestamp: uc.now(),
	})
}

// List consulta la bitácora, más recientes primero.
func (uc *UseCase) List(ctx context.Context, in ListInput) ([]*entity.ActivityLog, error) {
	filter := repository.ActivityLogFilter{Actor: in.Actor, Action: in.Action, Limit: in.Limit, Offset: in.Offset}
	if in.StartDate != "" {
		d, err := time.ParseInLocation("2006-01-02", in.StartDate, uc.loc)
		if err != nil {
			return nil, domain.InvalidInput("startDate debe tener formato YYYY-MM-DD.")
		}
		filter.From = &d
	}
	if in.EndDate != "" {
		d, err := time.ParseInLocation("2006-01-02", in.EndDate, uc.loc)
		if err != nil {
			return nil, domain.InvalidInput("endDate debe tener formato YYYY-MM-DD.")
		}
		d = d.AddDate(0, 0, 1).Add(-time.Millisecond)
		filter.To = &d
	}
	return uc.repo.List(ctx, filter)
}
