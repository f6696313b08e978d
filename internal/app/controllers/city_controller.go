package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
)

// CityController handles city-related operations
type CityController struct {
	cityService *services.CityService
}

// NewCityController creates a new CityController
func NewCityController(cityService *services.CityService) *CityController {
	return &CityController{cityService: cityService}
}

// GetCities retrieves all supported cities
// @Summary List cities
// @Description Retrieves all cities events can be hosted in
// @Tags cities
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.City} "Cities retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cities [get]
func (c *CityController) GetCities(ctx *gin.Context) {
	cities, err := c.cityService.GetCities(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      cities,
		Timestamp: time.Now(),
	})
}

// CreateCity adds a city to the catalogue
// @Summary Create city
// @Description Adds a new city to the supported-cities catalogue
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCityRequest true "City information"
// @Success 201 {object} dto.APIResponse{data=models.City} "City created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "City already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/cities [post]
func (c *CityController) CreateCity(ctx *gin.Context) {
	var req dto.CreateCityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid city data", err)
		return
	}

	city := &models.City{Name: req.Name, State: req.State}
	if err := c.cityService.CreateCity(ctx, city); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      city,
		Timestamp: time.Now(),
	})
}

// UpdateCity renames a city
// @Summary Update city
// @Description Updates a city's name and state
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Param request body dto.UpdateCityRequest true "City information"
// @Success 200 {object} dto.APIResponse{data=models.City} "City updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 409 {object} dto.ErrorResponse "City already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/cities/{id} [put]
func (c *CityController) UpdateCity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid city data", err)
		return
	}

	city, err := c.cityService.UpdateCity(ctx, id, req.Name, req.State)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      city,
		Timestamp: time.Now(),
	})
}

// DeleteCity removes a city
// @Summary Delete city
// @Description Removes a city that has no communities, venues, events or subscribers
// @Tags cities
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Success 200 {object} dto.APIResponse "City deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid city ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 409 {object} dto.ErrorResponse "City has associated data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/cities/{id} [delete]
func (c *CityController) DeleteCity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.cityService.DeleteCity(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "City deleted",
		Timestamp: time.Now(),
	})
}
