package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// ProductSnapshot conserva nombre y SKU del producto al momento del movimiento,
// para que los reportes históricos sigan siendo legibles si el producto cambia o se elimina.
type ProductSnapshot struct {
	Name string
	SKU  string
}

// Movement es el registro inmutable de un cambio de stock. Nunca se actualiza ni se elimina;
// las correcciones se hacen con movimientos compensatorios.
type Movement struct {
	ID              string
	ProductID       string
	Type            string // entrada, salida
	Quantity        int    // siempre positiva; el signo lo da Type
	Reason          string
	Observations    string
	ActorID         string
	ActorName       string
	Date            time.Time
	StockBefore     int
	StockAfter      int
	ProductSnapshot ProductSnapshot
	IdempotencyKey  string // opcional, provisto por el cliente
}

// IsValidMovementType indica si t es un tipo de movimiento soportado.
func IsValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// SignedQuantity devuelve la cantidad con signo: +Quantity para entrada, -Quantity para salida.
func (m *Movement) SignedQuantity() int {
	if m.Type == MovementTypeSalida {
		return -m.Quantity
	}
	return m.Quantity
}
