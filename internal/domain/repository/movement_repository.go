package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// MovementFilter criterios de consulta del libro de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// MovementStats conteos agregados del libro.
type MovementStats struct {
	Total    int
	Entradas int
	Salidas  int
	Recent   int // registrados en o después de Since
}

// MovementRepository define el puerto de lectura del libro de movimientos.
// No existe operación de actualización ni de borrado: los movimientos son inmutables.
type MovementRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List devuelve los movimientos ordenados por fecha descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// ListByProduct devuelve todos los movimientos de un producto en orden cronológico.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	// Stats cuenta el total, las entradas, las salidas y los movimientos desde since.
	Stats(ctx context.Context, since time.Time) (MovementStats, error)
}

// MovementTxRepository es la parte de escritura del libro, siempre dentro de la transacción.
type MovementTxRepository interface {
	// Create persiste el movimiento. Devuelve domain.ErrDuplicate si la clave de idempotencia ya existe.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.Movement, error)
}
