package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// replenishmentWindow periodo de salidas que se usa para priorizar.
const replenishmentWindow = 90 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición.
// Combina los productos en o bajo su stock mínimo con el volumen de salidas reciente para priorizar.
type ReplenishmentUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository, movements repository.MovementRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products, movements: movements, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos con stock bajo, la cantidad sugerida de pedido
// y un ranking de prioridad (1 = más urgente).
// Productos dañados o descontinuados no se reponen.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	since := uc.now().Add(-replenishmentWindow)
	outs, err := uc.movements.List(ctx, repository.MovementFilter{Type: entity.MovementTypeSalida, From: &since})
	if err != nil {
		return nil, err
	}
	unitsOut := make(map[string]int, len(low))
	for _, m := range outs {
		unitsOut[m.ProductID] += m.Quantity
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		if p.Estado == entity.EstadoDanado || p.Estado == entity.EstadoDescontinuado {
			continue
		}
		target := TargetStock(p.Stock)
		qty := target - p.Stock.Actual
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			Category:          p.Category,
			CurrentStock:      p.Stock.Actual,
			MinimumStock:      p.Stock.Minimo,
			TargetStock:       target,
			SuggestedOrderQty: qty,
			UnitPrice:         p.Price,
			EstimatedValue:    p.Price.Mul(decimal.NewFromInt(int64(qty))),
			UnitsOutLast90d:   unitsOut[p.ID],
		})
	}

	// Primero mayor rotación reciente, luego mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsOutLast90d != b.UnitsOutLast90d {
			return a.UnitsOutLast90d > b.UnitsOutLast90d
		}
		return a.MinimumStock-a.CurrentStock > b.MinimumStock-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// TargetStock nivel al que se repone: el máximo si está configurado por encima del mínimo,
// si no 1.5 veces el mínimo (redondeado hacia arriba).
func TargetStock(s entity.Stock) int {
	if s.Maximo > s.Minimo {
		return s.Maximo
	}
	return (s.Minimo*3 + 1) / 2
}
