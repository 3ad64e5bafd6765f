package handler

import (
	"inventory-spa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
// GET /api/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return serverError(c, "dashboard stats", err)
	}

	return c.JSON(fiber.Map{
		"data":                stats,
		"low_stock_threshold": service.LowStockThreshold,
	})
}
