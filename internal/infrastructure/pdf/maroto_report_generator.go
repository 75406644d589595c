// Package pdf genera los reportes PDF del inventario con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Periodo / fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas propias de cada reporte                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/report"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	company string
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador. company aparece en el encabezado de cada reporte.
func NewMarotoReportGenerator(company string) *MarotoReportGenerator {
	return &MarotoReportGenerator{company: company, printer: message.NewPrinter(language.Spanish)}
}

// MovementsPDF reporte de movimientos de un periodo (apaisado: la tabla es ancha).
func (g *MarotoReportGenerator) MovementsPDF(_ context.Context, r report.MovementsReport) ([]byte, error) {
	m := g.newDocument("Reporte de movimientos", orientation.Horizontal)

	period := fmt.Sprintf("Periodo: %s a %s", r.From.Format("02/01/2006"), r.To.Format("02/01/2006"))
	m.AddRows(g.headerRow("REPORTE DE MOVIMIENTOS", period, r.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]column{
		{"Fecha", 2, align.Left},
		{"Producto", 3, align.Left},
		{"Tipo", 1, align.Center},
		{"Cant.", 1, align.Right},
		{"Anterior", 1, align.Right},
		{"Nuevo", 1, align.Right},
		{"Usuario", 1, align.Left},
		{"Razón", 2, align.Left},
	}))
	for _, mv := range r.Movements {
		m.AddRows(g.movementRow(mv))
	}
	if len(r.Movements) == 0 {
		m.AddRows(emptyRow("No hay movimientos en el periodo seleccionado."))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow([][2]string{
		{"Movimientos:", g.printer.Sprintf("%d", len(r.Movements))},
		{"Unidades ingresadas:", g.printer.Sprintf("%d", r.TotalEntradas)},
		{"Unidades despachadas:", g.printer.Sprintf("%d", r.TotalSalidas)},
	}))
	return generate(m)
}

// LowStockPDF reporte de productos en o bajo su stock mínimo.
func (g *MarotoReportGenerator) LowStockPDF(_ context.Context, r report.LowStockReport) ([]byte, error) {
	m := g.newDocument("Reporte de stock bajo", orientation.Vertical)

	m.AddRows(g.headerRow("PRODUCTOS CON STOCK BAJO", fmt.Sprintf("%d productos", len(r.Items)), r.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]column{
		{"SKU", 2, align.Left},
		{"Producto", 4, align.Left},
		{"Categoría", 2, align.Left},
		{"Actual", 1, align.Right},
		{"Mínimo", 1, align.Right},
		{"Estado", 2, align.Center},
	}))
	for _, it := range r.Items {
		actualColor := colorGray
		if it.Actual == 0 {
			actualColor = colorAlert
		}
		m.AddRows(row.New(7).Add(
			cell(it.SKU, 2, align.Left, nil),
			cell(it.Name, 4, align.Left, nil),
			cell(nonEmpty(it.Category, "—"), 2, align.Left, colorGray),
			cell(g.printer.Sprintf("%d", it.Actual), 1, align.Right, actualColor),
			cell(g.printer.Sprintf("%d", it.Minimo), 1, align.Right, nil),
			cell(it.Estado, 2, align.Center, nil),
		))
	}
	if len(r.Items) == 0 {
		m.AddRows(emptyRow("Todos los productos están por encima de su stock mínimo."))
	}
	return generate(m)
}

// ValuationPDF reporte de valorización del inventario por categoría.
func (g *MarotoReportGenerator) ValuationPDF(_ context.Context, v dto.ValuationResponse, generatedAt time.Time) ([]byte, error) {
	m := g.newDocument("Valorización del inventario", orientation.Vertical)

	m.AddRows(g.headerRow("VALORIZACIÓN DEL INVENTARIO", "Precio × stock actual", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]column{
		{"Categoría", 5, align.Left},
		{"Productos", 2, align.Right},
		{"Unidades", 2, align.Right},
		{"Valor", 3, align.Right},
	}))
	for _, c := range v.Categories {
		m.AddRows(row.New(7).Add(
			cell(c.Category, 5, align.Left, nil),
			cell(g.printer.Sprintf("%d", c.Products), 2, align.Right, nil),
			cell(g.printer.Sprintf("%d", c.Units), 2, align.Right, nil),
			cell(g.money(c.Value), 3, align.Right, nil),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow([][2]string{
		{"Unidades:", g.printer.Sprintf("%d", v.TotalUnits)},
		{"VALOR TOTAL:", g.money(v.TotalValue)},
	}))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) newDocument(title string, o orientation.Type) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(o).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: empresa + título (izq) y subtítulo + fecha de emisión (der).
func (g *MarotoReportGenerator) headerRow(title, subtitle string, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(subtitle, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) movementRow(mv *entity.Movement) core.Row {
	typeColor := colorPrimary
	if mv.Type == entity.MovementTypeSalida {
		typeColor = colorAlert
	}
	return row.New(7).Add(
		cell(mv.Date.Format("02/01/2006 15:04"), 2, align.Left, colorGray),
		cell(fmt.Sprintf("%s (%s)", mv.ProductSnapshot.Name, mv.ProductSnapshot.SKU), 3, align.Left, nil),
		cell(mv.Type, 1, align.Center, typeColor),
		cell(g.printer.Sprintf("%d", mv.Quantity), 1, align.Right, nil),
		cell(g.printer.Sprintf("%d", mv.StockBefore), 1, align.Right, colorGray),
		cell(g.printer.Sprintf("%d", mv.StockAfter), 1, align.Right, nil),
		cell(mv.ActorName, 1, align.Left, colorGray),
		cell(mv.Reason, 2, align.Left, nil),
	)
}

// totalsRow: pares etiqueta/valor alineados a la derecha.
func (g *MarotoReportGenerator) totalsRow(pairs [][2]string) core.Row {
	labels := make([]core.Component, 0, len(pairs))
	values := make([]core.Component, 0, len(pairs))
	for i, p := range pairs {
		top := float64(i * 6)
		labels = append(labels, text.New(p[0], props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values = append(values, text.New(p[1], props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	return row.New(float64(len(pairs)*6+4)).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func cell(s string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(s, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func emptyRow(msg string) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(msg, props.Text{
		Size: 9, Align: align.Center, Top: 3, Color: colorGray,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un valor en pesos sin decimales con separador de miles local. Ej: 1250000 → "$1.250.000".
func (g *MarotoReportGenerator) money(v decimal.Decimal) string {
	return g.printer.Sprintf("$%d", v.Round(0).IntPart())
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
