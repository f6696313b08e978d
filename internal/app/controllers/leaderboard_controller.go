package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
)

// LeaderboardController serves the most active communities and venues
type LeaderboardController struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// TopCommunities retrieves the communities with the most events
// @Summary Community leaderboard
// @Description Retrieves the approved communities that have hosted the most events
// @Tags leaderboard
// @Produce json
// @Param cityId query string false "Limit to a city"
// @Success 200 {object} dto.APIResponse{data=[]models.Community} "Leaderboard retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid city ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard/communities [get]
func (c *LeaderboardController) TopCommunities(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}

	communities, err := c.leaderboardService.TopCommunities(ctx, cityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      communities,
		Timestamp: time.Now(),
	})
}

// TopVenues retrieves the venues with the most events
// @Summary Venue leaderboard
// @Description Retrieves the approved venues that have hosted the most events
// @Tags leaderboard
// @Produce json
// @Param cityId query string false "Limit to a city"
// @Success 200 {object} dto.APIResponse{data=[]models.Venue} "Leaderboard retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid city ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard/venues [get]
func (c *LeaderboardController) TopVenues(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}

	venues, err := c.leaderboardService.TopVenues(ctx, cityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      venues,
		Timestamp: time.Now(),
	})
}
