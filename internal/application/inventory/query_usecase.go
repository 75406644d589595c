package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// DateLayout formato de fecha (día completo) aceptado en los filtros.
const DateLayout = "2006-01-02"

// ListMovementsInput filtros de consulta. StartDate y EndDate son días locales (YYYY-MM-DD)
// y se interpretan completos: desde las 00:00:00 del primero hasta el final del segundo.
type ListMovementsInput struct {
	ProductID string
	Type      string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// QueryUseCase consultas de solo lectura sobre el libro de movimientos.
type QueryUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
	loc       *time.Location
	now       func() time.Time
}

// NewQueryUseCase construye el caso de uso. loc nil usa la zona horaria local del proceso.
func NewQueryUseCase(movements repository.MovementRepository, products repository.ProductRepository, loc *time.Location) *QueryUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &QueryUseCase{movements: movements, products: products, loc: loc, now: time.Now}
}

// RecentWindow ventana de "movimientos recientes" en las estadísticas.
const RecentWindow = 7 * 24 * time.Hour

// MovementStats totales del libro y cantidad de movimientos de los últimos siete días.
func (uc *QueryUseCase) MovementStats(ctx context.Context) (repository.MovementStats, error) {
	return uc.movements.Stats(ctx, uc.now().Add(-RecentWindow))
}

// ListMovements devuelve los movimientos que cumplen el filtro, más recientes primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, in ListMovementsInput) ([]*entity.Movement, error) {
	if in.Type != "" && !entity.IsValidMovementType(in.Type) {
		return nil, domain.InvalidInput("El tipo de movimiento debe ser 'entrada' o 'salida'.")
	}
	from, to, err := DayRange(in.StartDate, in.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	if in.Limit < 0 || in.Offset < 0 {
		return nil, domain.InvalidInput("limit y offset no pueden ser negativos.")
	}
	return uc.movements.List(ctx, repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      from,
		To:        to,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
}

// GetMovement obtiene un movimiento por ID.
func (uc *QueryUseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	if id == "" {
		return nil, domain.InvalidInput("id requerido.")
	}
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("Movimiento no encontrado.")
	}
	return m, nil
}

// VerifyLedger reconstruye el saldo del producto a partir de todos sus movimientos y lo compara
// con los valores almacenados.
func (uc *QueryUseCase) VerifyLedger(ctx context.Context, productID string) (*inventory.ReplayReport, error) {
	if productID == "" {
		return nil, domain.InvalidInput("productId requerido.")
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Producto no encontrado.")
	}
	movements, err := uc.movements.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	report := inventory.Replay(movements, product.Stock.Actual)
	return &report, nil
}

// DayRange convierte un par de días locales en un rango [inicio del primero, fin del segundo].
// Cualquiera de los dos puede venir vacío (rango abierto).
func DayRange(start, end string, loc *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		d, err := time.ParseInLocation(DateLayout, start, loc)
		if err != nil {
			return nil, nil, domain.InvalidInput("startDate debe tener formato YYYY-MM-DD.")
		}
		from = &d
	}
	if end != "" {
		d, err := time.ParseInLocation(DateLayout, end, loc)
		if err != nil {
			return nil, nil, domain.InvalidInput("endDate debe tener formato YYYY-MM-DD.")
		}
		d = d.AddDate(0, 0, 1).Add(-time.Millisecond)
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.InvalidInput("startDate no puede ser posterior a endDate.")
	}
	return from, to, nil
}
