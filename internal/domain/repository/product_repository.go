package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Search   string // coincidencia parcial en SKU o nombre
	Category string
	Estado   string
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los datos del catálogo; nunca Stock.Actual ni FechaUltimoMovimiento.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock actual en o por debajo del mínimo.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductTxRepository es el subconjunto del almacén de productos que usa el libro de movimientos
// dentro de su transacción.
type ProductTxRepository interface {
	// GetForUpdate lee el producto y lo reserva para la transacción en curso
	// (bloqueo de fila o seguimiento de versión, según el adaptador). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe solo stock.actual, estado y fechaUltimoMovimiento.
	UpdateStock(ctx context.Context, id string, actual int, estado string, at time.Time) error
}
