package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rssb/sewadar-backend/internal/app/models/dto"
	"github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/middleware"
)

// DashboardController serves the aggregate roster and application views
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetSewadarsDashboard aggregates the roster
// @Summary Sewadars dashboard
// @Description Aggregates the roster by role, location, profession and spoken language
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SewadarsDashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/sewadars [get]
func (c *DashboardController) GetSewadarsDashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.GetSewadarsDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// GetApplicationsDashboard summarizes application activity per program
// @Summary Applications dashboard
// @Description Summarizes application activity per program, including how many approved slots remain
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationsDashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/applications [get]
func (c *DashboardController) GetApplicationsDashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.GetApplicationsDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}
