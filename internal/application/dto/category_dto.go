package dto

import "github.com/shopspring/decimal"

// CategoryResponse categoría con los totales de sus productos.
type CategoryResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion,omitempty"`
	ProductCount int             `json:"productCount"`
	TotalStock   int             `json:"totalStock"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	Activa       bool            `json:"activa"`
}

// CategoryDetailResponse categoría con sus productos.
type CategoryDetailResponse struct {
	CategoryResponse
	Products []ProductResponse `json:"products"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=100"`
	Descripcion string `json:"descripcion" validate:"max=500"`
}

// RenameCategoryRequest body para PUT /api/categories/:name.
type RenameCategoryRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// RenameCategoryResponse resultado del cambio de nombre.
type RenameCategoryResponse struct {
	Nombre          string `json:"nombre"`
	UpdatedProducts int    `json:"updatedProducts"`
}
