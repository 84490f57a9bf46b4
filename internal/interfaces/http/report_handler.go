package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferreinv/inventario-api/internal/application/reports"
)

// ReportHandler reportes agregados sobre catálogo y ledger.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopProducts godoc
// @Summary      Productos con más salidas
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (default 10)"
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.uc.TopProducts(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valor de inventario por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryValueDTO
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValueByCategory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementsByPeriod godoc
// @Summary      Entradas y salidas agregadas por día
// @Tags         reports
// @Produce      json
// @Param        startDate  query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {array}  dto.PeriodMovementsDTO
// @Router       /api/reports/movements-by-period [get]
func (h *ReportHandler) MovementsByPeriod(c *fiber.Ctx) error {
	from := parseDateQuery(c.Query("startDate"))
	to := parseDateQuery(c.Query("endDate"))
	out, err := h.uc.MovementsByPeriod(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ValuationPDF godoc
// @Summary      Descargar PDF de valorización de inventario
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory-value/pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.InventoryValuationPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("valorizacion-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
