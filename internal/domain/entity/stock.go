package entity

// Stock agrupa los niveles de stock de un producto.
type Stock struct {
	Actual int // cantidad disponible; nunca negativa
	Minimo int // umbral de reposición
	Maximo int // techo orientativo, no se hace cumplir
}
