// Package report arma los reportes de solo lectura: stock bajo, valorización y exportaciones PDF.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// UseCase reportes del inventario. No modifica datos.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	generator PDFGenerator
	loc       *time.Location
	now       func() time.Time
}

// NewUseCase construye el caso de uso. loc nil usa la zona local.
func NewUseCase(products repository.ProductRepository, movements repository.MovementRepository, generator PDFGenerator, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{products: products, movements: movements, generator: generator, loc: loc, now: time.Now}
}

// LowStock devuelve los productos con stock actual en o por debajo del mínimo, ordenados por SKU.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	list, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(list))
	for _, p := range list {
		if !p.IsLowStock() {
			continue
		}
		items = append(items, dto.LowStockItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Actual:    p.Stock.Actual,
			Minimo:    p.Stock.Minimo,
			Estado:    p.Estado,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })
	return items, nil
}

// Valuation calcula precio × stock actual por categoría y el total.
func (uc *UseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	list, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := map[string]*dto.CategoryValuation{}
	out := &dto.ValuationResponse{TotalValue: decimal.Zero}
	for _, p := range list {
		cat := p.Category
		if cat == "" {
			cat = "Sin categoría"
		}
		cv, ok := byCategory[cat]
		if !ok {
			cv = &dto.CategoryValuation{Category: cat, Value: decimal.Zero}
			byCategory[cat] = cv
		}
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock.Actual)))
		cv.Products++
		cv.Units += p.Stock.Actual
		cv.Value = cv.Value.Add(value)
		out.TotalUnits += p.Stock.Actual
		out.TotalValue = out.TotalValue.Add(value)
	}
	out.Categories = make([]dto.CategoryValuation, 0, len(byCategory))
	for _, cv := range byCategory {
		out.Categories = append(out.Categories, *cv)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})
	return out, nil
}

// ExportMovementsPDF genera el PDF de movimientos entre dos días locales (ambos inclusive).
// Devuelve los bytes y el nombre sugerido del archivo.
func (uc *UseCase) ExportMovementsPDF(ctx context.Context, startDate, endDate string) ([]byte, string, error) {
	if startDate == "" || endDate == "" {
		return nil, "", domain.InvalidInput("Las fechas de inicio y fin son requeridas.")
	}
	from, to, err := appinventory.DayRange(startDate, endDate, uc.loc)
	if err != nil {
		return nil, "", err
	}
	movements, err := uc.movements.List(ctx, repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, "", err
	}
	r := MovementsReport{From: *from, To: *to, GeneratedAt: uc.now().In(uc.loc), Movements: movements}
	for _, m := range movements {
		if m.Type == entity.MovementTypeEntrada {
			r.TotalEntradas += m.Quantity
		} else {
			r.TotalSalidas += m.Quantity
		}
	}
	pdf, err := uc.generator.MovementsPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf de movimientos: %w", err)
	}
	return pdf, fmt.Sprintf("reporte_movimientos_%s_a_%s.pdf", startDate, endDate), nil
}

// ExportLowStockPDF genera el PDF de productos con stock bajo.
func (uc *UseCase) ExportLowStockPDF(ctx context.Context) ([]byte, string, error) {
	items, err := uc.LowStock(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now().In(uc.loc)
	pdf, err := uc.generator.LowStockPDF(ctx, LowStockReport{GeneratedAt: now, Items: items})
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf de stock bajo: %w", err)
	}
	return pdf, fmt.Sprintf("reporte_stock_bajo_%s.pdf", now.Format("2006-01-02")), nil
}

// ExportValuationPDF genera el PDF de valorización del inventario.
func (uc *UseCase) ExportValuationPDF(ctx context.Context) ([]byte, string, error) {
	v, err := uc.Valuation(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now().In(uc.loc)
	pdf, err := uc.generator.ValuationPDF(ctx, *v, now)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf de valorización: %w", err)
	}
	return pdf, fmt.Sprintf("valorizacion_inventario_%s.pdf", now.Format("2006-01-02")), nil
}
