package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora de actividad sobre PostgreSQL (solo inserción y lectura).
type ActivityLogRepo struct {
	db DBTX
}

func NewActivityLogRepository(db DBTX) *ActivityLogRepo {
	return &ActivityLogRepo{db: db}
}

func (r *ActivityLogRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO activity_logs (id, actor, action, details, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Actor, e.Action, e.Details, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List devuelve las entradas más recientes primero.
func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLog, error) {
	var w whereBuilder
	if f.Actor != "" {
		w.add("actor = $%d", f.Actor)
	}
	if f.Action != "" {
		w.add("action = $%d", f.Action)
	}
	if f.From != nil {
		w.add("timestamp >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("timestamp <= $%d", *f.To)
	}
	query := `SELECT id, actor, action, details, timestamp FROM activity_logs` + w.sql() +
		` ORDER BY timestamp DESC, id` + w.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
