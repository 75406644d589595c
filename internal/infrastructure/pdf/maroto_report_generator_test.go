package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/report"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/pdf"
)

var emitido = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestMovementsPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("LM Inventario")
	out, err := g.MovementsPDF(context.Background(), report.MovementsReport{
		From:        emitido.AddDate(0, 0, -7),
		To:          emitido,
		GeneratedAt: emitido,
		Movements: []*entity.Movement{{
			ID: "m1", ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 3,
			Reason: "Venta", ActorName: "Ana", Date: emitido, StockBefore: 10, StockAfter: 7,
			ProductSnapshot: entity.ProductSnapshot{Name: "Tornillo", SKU: "TOR-1"},
		}},
		TotalSalidas: 3,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLowStockPDF_SinItems(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("LM Inventario")
	out, err := g.LowStockPDF(context.Background(), report.LowStockReport{GeneratedAt: emitido})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestValuationPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("LM Inventario")
	out, err := g.ValuationPDF(context.Background(), dto.ValuationResponse{
		Categories: []dto.CategoryValuation{{Category: "Ferretería", Products: 2, Units: 40, Value: decimal.NewFromInt(1250000)}},
		TotalUnits: 40,
		TotalValue: decimal.NewFromInt(1250000),
	}, emitido)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
