package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/activity"
	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/usecase"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/memory"
)

var admin = entity.Actor{ID: "u-admin", DisplayName: "Admin", Email: "admin@lm.co", Role: entity.RoleAdmin}

func newProductUseCase() (*usecase.ProductUseCase, *memory.ActivityLogRepository) {
	store := memory.NewStore()
	logs := memory.NewActivityLogRepository(store)
	return usecase.NewProductUseCase(memory.NewProductRepository(store), activity.NewUseCase(logs, nil), zerolog.Nop()), logs
}

func TestProductCreate_EstadoInicialSegunStock(t *testing.T) {
	uc, logs := newProductUseCase()
	ctx := context.Background()

	con, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A-1", Name: "Martillo", Price: decimal.NewFromInt(20000), Stock: dto.StockDTO{Actual: 5, Minimo: 2}})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, con.Estado)

	sin, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A-2", Name: "Serrucho"})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoSinStock, sin.Estado)

	entries, _ := logs.List(ctx, repository.ActivityLogFilter{Action: entity.ActionCrearProducto})
	assert.Len(t, entries, 2)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: " ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "X", Name: "x", Stock: dto.StockDTO{Actual: -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "X", Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "X", Name: "x", Stock: dto.StockDTO{Actual: math.MaxInt32 + 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoModificaStockActual(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A-1", Name: "Martillo", Stock: dto.StockDTO{Actual: 5, Minimo: 2}})
	require.NoError(t, err)

	minimo, estado := 4, entity.EstadoDescontinuado
	updated, err := uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Minimo: &minimo, Estado: &estado})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock.Actual)
	assert.Equal(t, 4, updated.Stock.Minimo)
	assert.Equal(t, entity.EstadoDescontinuado, updated.Estado)

	bad := "vendido"
	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Estado: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, admin, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListYDelete(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A-1", Name: "Martillo", Category: "Herramientas", Stock: dto.StockDTO{Actual: 1}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "B-1", Name: "Pintura", Category: "Acabados", Stock: dto.StockDTO{Actual: 1}})
	require.NoError(t, err)

	list, err := uc.List(ctx, repository.ProductFilter{Search: "mart"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A-1", list.Items[0].SKU)

	list, err = uc.List(ctx, repository.ProductFilter{Category: "Acabados"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, admin, p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, admin, p.ID), domain.ErrNotFound)
}
