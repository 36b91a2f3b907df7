package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	stats repositories.StatsRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(stats repositories.StatsRepository) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// GetStats returns the dashboard aggregate
// @Summary Dashboard statistics
// @Description Chama count, member count, contribution total and next payout date
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 500 {object} response.Message
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.GetDashboardStats(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, stats)
}
