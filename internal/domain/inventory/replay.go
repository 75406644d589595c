package inventory

import (
	"sort"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// Campos del movimiento que pueden no cuadrar en una reconstrucción.
const (
	FieldStockBefore  = "stock_anterior"
	FieldStockAfter   = "stock_nuevo"
	FieldStockCurrent = "stock_actual"
)

// Discrepancy describe un valor almacenado que no coincide con la reconstrucción.
type Discrepancy struct {
	MovementID string // vacío cuando la diferencia es contra el stock actual del producto
	Field      string
	Expected   int
	Stored     int
}

// ReplayReport es el resultado de reconstruir el saldo de un producto a partir de sus movimientos.
type ReplayReport struct {
	Movements     int
	InitialStock  int
	ComputedStock int
	CurrentStock  int
	Discrepancies []Discrepancy
}

// Consistent indica si la reconstrucción coincide con todos los valores almacenados.
func (r ReplayReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// Replay ordena los movimientos por fecha, parte del primer stock_anterior y aplica las cantidades
// con signo, comparando cada stock_anterior/stock_nuevo y, al final, el stock actual del producto.
// Sin movimientos, el saldo reconstruido es el propio stock actual.
func Replay(movements []*entity.Movement, currentStock int) ReplayReport {
	report := ReplayReport{Movements: len(movements), CurrentStock: currentStock}
	if len(movements) == 0 {
		report.InitialStock = currentStock
		report.ComputedStock = currentStock
		return report
	}

	ordered := make([]*entity.Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	running := ordered[0].StockBefore
	report.InitialStock = running
	for _, m := range ordered {
		if m.StockBefore != running {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				MovementID: m.ID, Field: FieldStockBefore, Expected: running, Stored: m.StockBefore,
			})
		}
		running += m.SignedQuantity()
		if m.StockAfter != running {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				MovementID: m.ID, Field: FieldStockAfter, Expected: running, Stored: m.StockAfter,
			})
		}
	}
	report.ComputedStock = running
	if running != currentStock {
		report.Discrepancies = append(report.Discrepancies, Discrepancy{
			Field: FieldStockCurrent, Expected: running, Stored: currentStock,
		})
	}
	return report
}
