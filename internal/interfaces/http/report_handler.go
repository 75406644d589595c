package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/report"
)

// ReportHandler reportes de inventario en JSON y PDF.
type ReportHandler struct {
	uc     *report.UseCase
	logger zerolog.Logger
}

func NewReportHandler(uc *report.UseCase, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: logger}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos con stock actual menor o igual a su mínimo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(items)
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Description  precio × stock actual, por categoría y total.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(out)
}

// MovementsPDF godoc
// @Summary      Reporte de movimientos (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements/pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ExportMovementsPDF(c.UserContext(), c.Query("startDate"), c.Query("endDate"))
	return h.sendPDF(c, pdf, filename, err)
}

// LowStockPDF godoc
// @Summary      Reporte de stock bajo (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/low-stock/pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ExportLowStockPDF(c.UserContext())
	return h.sendPDF(c, pdf, filename, err)
}

// ValuationPDF godoc
// @Summary      Valorización del inventario (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/valuation/pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ExportValuationPDF(c.UserContext())
	return h.sendPDF(c, pdf, filename, err)
}

func (h *ReportHandler) sendPDF(c *fiber.Ctx, pdf []byte, filename string, err error) error {
	if err != nil {
		return writeError(c, h.logger, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
