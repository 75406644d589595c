package usecase_test

import (
	"context"
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

type categoryFixture struct {
	uc       *usecase.CategoryUseCase
	products *usecase.ProductUseCase
	logs     *memory.ActivityLogRepository
}

func newCategoryFixture() categoryFixture {
	store := memory.NewStore()
	logs := memory.NewActivityLogRepository(store)
	act := activity.NewUseCase(logs, nil)
	products := memory.NewProductRepository(store)
	return categoryFixture{
		uc:       usecase.NewCategoryUseCase(memory.NewCategoryRepository(store), products, act, zerolog.Nop()),
		products: usecase.NewProductUseCase(products, act, zerolog.Nop()),
		logs:     logs,
	}
}

func (f categoryFixture) product(t *testing.T, sku, category string, actual int, price int64) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), admin, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, Category: category,
		Price: decimal.NewFromInt(price), Stock: dto.StockDTO{Actual: actual},
	})
	require.NoError(t, err)
	return p.ID
}

func TestCategoryList_UneRegistradasYUsadas(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	f.product(t, "A-1", "Jabones", 4, 5000)
	f.product(t, "A-2", "Jabones", 2, 3000)
	f.product(t, "B-1", "Cremas", 1, 10000)
	f.product(t, "C-1", "", 9, 100)
	_, err := f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: "Aceites", Descripcion: "esenciales"})
	require.NoError(t, err)

	list, err := f.uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Aceites", "Cremas", "Jabones"}, []string{list[0].Nombre, list[1].Nombre, list[2].Nombre})

	assert.Equal(t, 0, list[0].ProductCount)
	assert.Equal(t, "esenciales", list[0].Descripcion)
	jabones := list[2]
	assert.Equal(t, 2, jabones.ProductCount)
	assert.Equal(t, 6, jabones.TotalStock)
	assert.True(t, decimal.NewFromInt(26000).Equal(jabones.TotalValue))
}

func TestCategoryCreate_Duplicada(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	f.product(t, "A-1", "Jabones", 1, 1)

	_, err := f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: " Jabones "})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "usada por productos cuenta como existente")

	_, err = f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: "Cremas"})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: "Cremas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entries, _ := f.logs.List(ctx, repository.ActivityLogFilter{Action: entity.ActionCrearCategoria})
	assert.Len(t, entries, 1)
}

func TestCategoryRename_PropagaAProductos(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	id := f.product(t, "A-1", "Jabon", 1, 1)
	f.product(t, "A-2", "Jabon", 1, 1)
	f.product(t, "B-1", "Cremas", 1, 1)

	out, err := f.uc.Rename(ctx, admin, "Jabon", dto.RenameCategoryRequest{Nombre: "Jabones"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.UpdatedProducts)

	p, err := f.products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jabones", p.Category)

	_, err = f.uc.Get(ctx, "Jabon")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	detail, err := f.uc.Get(ctx, "Jabones")
	require.NoError(t, err)
	assert.Len(t, detail.Products, 2)

	_, err = f.uc.Rename(ctx, admin, "Jabones", dto.RenameCategoryRequest{Nombre: "Cremas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.uc.Rename(ctx, admin, "No existe", dto.RenameCategoryRequest{Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDelete_SoloSinProductos(t *testing.T) {
	f := newCategoryFixture()
	ctx := context.Background()
	id := f.product(t, "A-1", "Jabones", 1, 1)
	_, err := f.uc.Create(ctx, admin, dto.CreateCategoryRequest{Nombre: "Vacía"})
	require.NoError(t, err)

	err = f.uc.Delete(ctx, admin, "Jabones")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "1 producto(s)")

	n, err := f.uc.ProductsCount(ctx, "Jabones")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, f.uc.Delete(ctx, admin, "Vacía"))
	assert.ErrorIs(t, f.uc.Delete(ctx, admin, "Vacía"), domain.ErrNotFound)

	// sin productos y sin registro ya no existe
	require.NoError(t, f.products.Delete(ctx, admin, id))
	assert.ErrorIs(t, f.uc.Delete(ctx, admin, "Jabones"), domain.ErrNotFound)
}
