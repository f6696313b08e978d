package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
)

// AnalyticsController serves the admin dashboard summary
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetSummary retrieves platform-wide counts
// @Summary Analytics summary
// @Description Retrieves event, community, venue and subscription totals with per-city and per-type breakdowns
// @Tags admin-analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsResponse} "Summary retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	summary, err := c.analyticsService.GetSummary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// GetClicks retrieves registration click breakdowns
// @Summary Click analytics
// @Description Retrieves registration click totals broken down by city, month and community
// @Tags admin-analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClickAnalyticsResponse} "Click analytics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics/clicks [get]
func (c *AnalyticsController) GetClicks(ctx *gin.Context) {
	clicks, err := c.analyticsService.GetClickAnalytics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      clicks,
		Timestamp: time.Now(),
	})
}
