// Package inventory contiene las reglas puras del libro de movimientos: cálculo de saldo,
// detección de cruce del stock mínimo y transición de estado. No accede a almacenamiento.
package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// MaxStock es el mayor saldo o cantidad representable en las columnas INTEGER del almacén.
const MaxStock = math.MaxInt32

// Balance es el estado del producto que el libro necesita para aplicar un movimiento.
type Balance struct {
	Actual int
	Minimo int
	Estado string
}

// Outcome es el resultado de aplicar un movimiento sobre un Balance.
type Outcome struct {
	StockBefore         int
	StockAfter          int
	NewEstado           string
	CrossedBelowMinimum bool
}

// BalanceOf extrae el Balance de un producto.
func BalanceOf(p *entity.Product) Balance {
	return Balance{Actual: p.Stock.Actual, Minimo: p.Stock.Minimo, Estado: p.Estado}
}

// SignedDelta devuelve +quantity para entrada y -quantity para salida.
func SignedDelta(movementType string, quantity int) int {
	if movementType == entity.MovementTypeSalida {
		return -quantity
	}
	return quantity
}

// Apply calcula el saldo resultante de un movimiento.
// Devuelve *domain.InsufficientStockError si el stock quedaría negativo y un error de
// validación si la cantidad o el saldo resultante superan MaxStock.
// El cruce del mínimo es por flanco: solo es verdadero cuando el saldo pasa de estar por
// encima del mínimo a estar en o por debajo de él.
func Apply(b Balance, movementType string, quantity int) (Outcome, error) {
	before := b.Actual
	if quantity > MaxStock {
		return Outcome{}, domain.InvalidInput(fmt.Sprintf("La cantidad no puede superar %d.", MaxStock))
	}
	if movementType != entity.MovementTypeSalida && before > MaxStock-quantity {
		return Outcome{}, domain.InvalidInput(fmt.Sprintf(
			"El stock resultante superaría el máximo permitido (%d). Stock actual: %d, cantidad: %d.",
			MaxStock, before, quantity))
	}
	after := before + SignedDelta(movementType, quantity)
	if after < 0 {
		return Outcome{}, &domain.InsufficientStockError{Current: before, Requested: quantity}
	}
	return Outcome{
		StockBefore:         before,
		StockAfter:          after,
		NewEstado:           NextEstado(b.Estado, after),
		CrossedBelowMinimum: after <= b.Minimo && before > b.Minimo,
	}, nil
}

// NextEstado aplica la transición automática de estado.
// Stock 0 → sin-stock; stock positivo saliendo de sin-stock → activo.
// dañado y descontinuado nunca se tocan.
func NextEstado(current string, stockAfter int) string {
	if current == entity.EstadoDanado || current == entity.EstadoDescontinuado {
		return current
	}
	if stockAfter == 0 {
		return entity.EstadoSinStock
	}
	if stockAfter > 0 && current == entity.EstadoSinStock {
		return entity.EstadoActivo
	}
	return current
}
