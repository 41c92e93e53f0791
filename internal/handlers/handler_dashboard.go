package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// dashboardHandler serves the aggregate statistics endpoint.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", middleware.RequireRoles(domain.RoleAdmin, domain.RolePrincipal), h.getStats)
	}
}

// getStats godoc
// @Summary Dashboard statistics
// @Description Returns due, certificate, and pending-signature counts grouped by status and department.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to load dashboard statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
