package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

func TestTargetStock(t *testing.T) {
	assert.Equal(t, 40, inventory.TargetStock(entity.Stock{Minimo: 10, Maximo: 40}))
	assert.Equal(t, 15, inventory.TargetStock(entity.Stock{Minimo: 10}))
	assert.Equal(t, 5, inventory.TargetStock(entity.Stock{Minimo: 3, Maximo: 3}))
}

func TestGenerateReplenishmentList_PriorizaPorRotacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "lento", SKU: "L", Name: "Lento", Price: decimal.NewFromInt(1000),
		Stock: entity.Stock{Actual: 12, Minimo: 10, Maximo: 30}, Estado: entity.EstadoActivo,
	}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "rapido", SKU: "R", Name: "Rápido", Price: decimal.NewFromInt(500),
		Stock: entity.Stock{Actual: 20, Minimo: 10}, Estado: entity.EstadoActivo,
	}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "roto", SKU: "X", Name: "Roto",
		Stock: entity.Stock{Actual: 0, Minimo: 5}, Estado: entity.EstadoDanado,
	}))

	_, err := f.uc.RecordMovement(ctx, input("lento", entity.MovementTypeSalida, 3)) // 12 → 9
	require.NoError(t, err)
	_, err = f.uc.RecordMovement(ctx, input("rapido", entity.MovementTypeSalida, 12)) // 20 → 8
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(f.products, f.movements).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "los productos dañados no se reponen")

	assert.Equal(t, "rapido", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 15, list[0].TargetStock)
	assert.Equal(t, 7, list[0].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(3500).Equal(list[0].EstimatedValue))

	assert.Equal(t, "lento", list[1].ProductID)
	assert.Equal(t, 21, list[1].SuggestedOrderQty)
}
