package dto

import "github.com/shopspring/decimal"

// LowStockItem producto en o bajo su stock mínimo.
type LowStockItem struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"nombre"`
	Category  string `json:"categoria"`
	Actual    int    `json:"actual"`
	Minimo    int    `json:"minimo"`
	Estado    string `json:"estado"`
}

// CategoryValuation valor del inventario de una categoría.
type CategoryValuation struct {
	Category string          `json:"categoria"`
	Products int             `json:"productos"`
	Units    int             `json:"unidades"`
	Value    decimal.Decimal `json:"valor"`
}

// ValuationResponse valorización del inventario (precio × stock actual).
type ValuationResponse struct {
	Categories []CategoryValuation `json:"categorias"`
	TotalUnits int                 `json:"totalUnidades"`
	TotalValue decimal.Decimal     `json:"valorTotal"`
}
