package report

import (
	"context"
	"time"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// MovementsReport datos del reporte de movimientos de un periodo.
type MovementsReport struct {
	From          time.Time
	To            time.Time
	GeneratedAt   time.Time
	Movements     []*entity.Movement
	TotalEntradas int
	TotalSalidas  int
}

// LowStockReport datos del reporte de stock bajo.
type LowStockReport struct {
	GeneratedAt time.Time
	Items       []dto.LowStockItem
}

// PDFGenerator renderiza los reportes a PDF. Lo implementa infrastructure/pdf.
type PDFGenerator interface {
	MovementsPDF(ctx context.Context, r MovementsReport) ([]byte, error)
	LowStockPDF(ctx context.Context, r LowStockReport) ([]byte, error)
	ValuationPDF(ctx context.Context, v dto.ValuationResponse, generatedAt time.Time) ([]byte, error)
}
