package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/report"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/memory"
)

type captureGenerator struct {
	movements report.MovementsReport
	lowStock  report.LowStockReport
}

func (g *captureGenerator) MovementsPDF(_ context.Context, r report.MovementsReport) ([]byte, error) {
	g.movements = r
	return []byte("%PDF-mov"), nil
}

func (g *captureGenerator) LowStockPDF(_ context.Context, r report.LowStockReport) ([]byte, error) {
	g.lowStock = r
	return []byte("%PDF-low"), nil
}

func (g *captureGenerator) ValuationPDF(context.Context, dto.ValuationResponse, time.Time) ([]byte, error) {
	return []byte("%PDF-val"), nil
}

func seed(t *testing.T, repo *memory.ProductRepository, id, cat string, price int64, actual, minimo int) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: id, Category: cat, Price: decimal.NewFromInt(price),
		Stock: entity.Stock{Actual: actual, Minimo: minimo}, Estado: entity.EstadoActivo,
	}))
}

func TestLowStockYValuation(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seed(t, products, "b", "Ferretería", 1500, 4, 5)
	seed(t, products, "a", "Ferretería", 1000, 10, 2)
	seed(t, products, "c", "", 250, 2, 2)

	uc := report.NewUseCase(products, memory.NewMovementRepository(store), &captureGenerator{}, time.UTC)
	ctx := context.Background()

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "SKU-b", low[0].SKU)
	assert.Equal(t, "SKU-c", low[1].SKU)

	v, err := uc.Valuation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, v.TotalUnits)
	assert.True(t, decimal.NewFromInt(16500).Equal(v.TotalValue), v.TotalValue.String())
	require.Len(t, v.Categories, 2)
	assert.Equal(t, "Ferretería", v.Categories[0].Category)
	assert.True(t, decimal.NewFromInt(16000).Equal(v.Categories[0].Value))
	assert.Equal(t, "Sin categoría", v.Categories[1].Category)
}

func TestExportMovementsPDF(t *testing.T) {
	store := memory.NewStore()
	gen := &captureGenerator{}
	uc := report.NewUseCase(memory.NewProductRepository(store), memory.NewMovementRepository(store), gen, time.UTC)

	_, _, err := uc.ExportMovementsPDF(context.Background(), "", "2025-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, name, err := uc.ExportMovementsPDF(context.Background(), "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-mov", string(out))
	assert.Equal(t, "reporte_movimientos_2025-03-01_a_2025-03-31.pdf", name)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), gen.movements.From)
}

func TestExportLowStockPDF(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seed(t, products, "b", "Ferretería", 1500, 0, 5)
	gen := &captureGenerator{}
	uc := report.NewUseCase(products, memory.NewMovementRepository(store), gen, time.UTC)

	_, name, err := uc.ExportLowStockPDF(context.Background())
	require.NoError(t, err)
	assert.Contains(t, name, "reporte_stock_bajo_")
	assert.Len(t, gen.lowStock.Items, 1)
}
