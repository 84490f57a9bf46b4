package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferreinv/inventario-api/internal/application/reports"
)

// DashboardHandler métricas y actividad reciente del dashboard.
type DashboardHandler struct {
	uc *reports.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Métricas del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsResponse
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.DashboardMetrics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecentActivity godoc
// @Summary      Últimos movimientos del ledger
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.ActivityItem
// @Router       /api/dashboard/recent-activity [get]
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivity(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
