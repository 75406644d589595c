package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=entrada salida"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"required"`
	Observations string `json:"observations,omitempty"`
}

// ProductInfoDTO copia de nombre y SKU guardada con el movimiento.
type ProductInfoDTO struct {
	Nombre string `json:"nombre"`
	SKU    string `json:"sku"`
}

// MovementResponse representación JSON de un movimiento del libro.
type MovementResponse struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	Type           string         `json:"type"`
	Quantity       int            `json:"quantity"`
	Reason         string         `json:"reason"`
	Observations   string         `json:"observations"`
	UserID         string         `json:"userId"`
	UserName       string         `json:"userName"`
	Date           time.Time      `json:"date"`
	StockAnterior  int            `json:"stock_anterior"`
	StockNuevo     int            `json:"stock_nuevo"`
	ProductInfo    ProductInfoDTO `json:"productInfo"`
	IdempotencyKey string         `json:"idempotencyKey,omitempty"`
}

// MovementStatsResponse resultado de GET /api/reports/movement-stats.
type MovementStatsResponse struct {
	TotalMovements  int `json:"totalMovements"`
	Entradas        int `json:"entradas"`
	Salidas         int `json:"salidas"`
	RecentMovements int `json:"recentMovements"`
}

// DiscrepancyDTO diferencia encontrada al reconstruir el libro de un producto.
type DiscrepancyDTO struct {
	MovementID string `json:"movementId,omitempty"`
	Field      string `json:"field"`
	Expected   int    `json:"expected"`
	Stored     int    `json:"stored"`
}

// LedgerVerificationResponse resultado de GET /api/movements/verify/:productId.
type LedgerVerificationResponse struct {
	ProductID     string           `json:"productId"`
	Consistent    bool             `json:"consistent"`
	Movements     int              `json:"movements"`
	InitialStock  int              `json:"initialStock"`
	ComputedStock int              `json:"computedStock"`
	CurrentStock  int              `json:"currentStock"`
	Discrepancies []DiscrepancyDTO `json:"discrepancies"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID         string          `json:"productId"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"productName"`
	Category          string          `json:"categoria"`
	CurrentStock      int             `json:"currentStock"`
	MinimumStock      int             `json:"minimumStock"`
	TargetStock       int             `json:"targetStock"`       // máximo, o 1.5 × mínimo
	SuggestedOrderQty int             `json:"suggestedOrderQty"` // TargetStock - CurrentStock
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	EstimatedValue    decimal.Decimal `json:"estimatedValue"` // SuggestedOrderQty × UnitPrice
	UnitsOutLast90d   int             `json:"unitsOutLast90d"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
