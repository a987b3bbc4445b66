package handler

import (
	"net/http"

	"github.com/dafeb/budget-bubbles/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles GET /api/dashboard
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}
	return c.JSON(http.StatusOK, summary)
}
