package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// CategoryRepository registro de categorías. Las categorías usadas por productos existen aunque
// no estén registradas; el registro permite crearlas antes de tener productos.
type CategoryRepository interface {
	// Create devuelve domain.ErrDuplicate si el nombre ya está registrado.
	Create(ctx context.Context, category *entity.Category) error
	// Get devuelve (nil, nil) si no está registrada.
	Get(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Rename cambia el nombre en el registro y en todos los productos de la categoría en una
	// sola operación. Devuelve la cantidad de productos actualizados.
	Rename(ctx context.Context, oldName, newName string, at time.Time) (int, error)
	// Delete devuelve domain.ErrNotFound si no está registrada.
	Delete(ctx context.Context, name string) error
}
