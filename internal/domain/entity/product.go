package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. El motor de movimientos solo alterna entre EstadoActivo y EstadoSinStock;
// EstadoDanado y EstadoDescontinuado se fijan únicamente por edición explícita del producto.
const (
	EstadoActivo        = "activo"
	EstadoSinStock      = "sin-stock"
	EstadoDanado        = "dañado"
	EstadoDescontinuado = "descontinuado"
)

// Product representa un producto del catálogo con su stock agregado.
// Stock.Actual solo cambia a través de movimientos.
type Product struct {
	ID                    string
	SKU                   string // código corto legible; la unicidad se valida aguas arriba
	Name                  string
	Description           string
	Category              string
	Price                 decimal.Decimal // precio de venta
	Stock                 Stock
	Estado                string
	FechaUltimoMovimiento *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsValidEstado indica si s es uno de los estados de producto conocidos.
func IsValidEstado(s string) bool {
	switch s {
	case EstadoActivo, EstadoSinStock, EstadoDanado, EstadoDescontinuado:
		return true
	}
	return false
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock.Actual <= p.Stock.Minimo
}
