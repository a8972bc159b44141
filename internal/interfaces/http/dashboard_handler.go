package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradeportal-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen de la página de inicio.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve los agregados del mes en curso.
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// InvoiceStats devuelve los agregados históricos de facturación.
// GET /api/invoices/stats
func (h *DashboardHandler) InvoiceStats(c *fiber.Ctx) error {
	stats, err := h.uc.InvoiceStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ShipmentStats devuelve los agregados históricos de embarques.
// GET /api/shipments/stats
func (h *DashboardHandler) ShipmentStats(c *fiber.Ctx) error {
	stats, err := h.uc.ShipmentStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// StockStats devuelve los agregados actuales de stock.
// GET /api/stock/stats
func (h *DashboardHandler) StockStats(c *fiber.Ctx) error {
	stats, err := h.uc.StockStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
