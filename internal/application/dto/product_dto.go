package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockDTO niveles de stock de un producto.
type StockDTO struct {
	Actual int `json:"actual" validate:"min=0"`
	Minimo int `json:"minimo" validate:"min=0"`
	Maximo int `json:"maximo" validate:"min=0"`
}

// CreateProductRequest entrada para crear un producto. stock.actual es el saldo inicial.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"nombre" validate:"required,min=1,max=200"`
	Description string          `json:"descripcion" validate:"max=2000"`
	Category    string          `json:"categoria" validate:"max=100"`
	Price       decimal.Decimal `json:"precio"`
	Stock       StockDTO        `json:"stock"`
}

// UpdateProductRequest entrada para actualizar un producto. stock.actual no se acepta aquí:
// solo cambia a través de movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion" validate:"omitempty,max=2000"`
	Category    *string          `json:"categoria" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"precio"`
	Minimo      *int             `json:"minimo" validate:"omitempty,min=0"`
	Maximo      *int             `json:"maximo" validate:"omitempty,min=0"`
	Estado      *string          `json:"estado" validate:"omitempty,oneof=activo sin-stock dañado descontinuado"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                    string          `json:"id"`
	SKU                   string          `json:"sku"`
	Name                  string          `json:"nombre"`
	Description           string          `json:"descripcion"`
	Category              string          `json:"categoria"`
	Price                 decimal.Decimal `json:"precio"`
	Stock                 StockDTO        `json:"stock"`
	Estado                string          `json:"estado"`
	FechaUltimoMovimiento *time.Time      `json:"fechaUltimoMovimiento,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
