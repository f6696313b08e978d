package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
	"github.com/loopinhq/backend/internal/pkg/helpers"
)

// VenueController handles venue listings and admin management
type VenueController struct {
	venueService *services.VenueService
}

// NewVenueController creates a new VenueController
func NewVenueController(venueService *services.VenueService) *VenueController {
	return &VenueController{venueService: venueService}
}

// GetVenues retrieves venues
// @Summary List venues
// @Description Retrieves venues with optional city, status and search filters
// @Tags venues
// @Produce json
// @Param cityId query string false "Filter by city ID"
// @Param status query string false "Filter by verification status"
// @Param search query string false "Search in venue names"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Venues retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /venues [get]
func (c *VenueController) GetVenues(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	venues, total, err := c.venueService.GetVenues(ctx, cityID,
		optionalString(ctx, "status"), optionalString(ctx, "search"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      venues,
			Pagination: helpers.NewPaginationInfo(total, page, pageSize),
		},
		Timestamp: time.Now(),
	})
}

// GetVenue retrieves a single venue
// @Summary Get venue
// @Description Retrieves a single venue by ID
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.APIResponse{data=models.Venue} "Venue retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid venue ID"
// @Failure 404 {object} dto.ErrorResponse "Venue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /venues/{id} [get]
func (c *VenueController) GetVenue(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	venue, err := c.venueService.GetVenue(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      venue,
		Timestamp: time.Now(),
	})
}

// CreateVenue creates an approved venue
// @Summary Create venue
// @Description Creates a venue that is immediately approved
// @Tags admin-venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVenueRequest true "Venue details"
// @Success 201 {object} dto.APIResponse{data=models.Venue} "Venue created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Venue already exists in this city"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/venues [post]
func (c *VenueController) CreateVenue(ctx *gin.Context) {
	var req dto.CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid venue data", err)
		return
	}

	venue := &models.Venue{
		Name:         req.Name,
		Address:      req.Address,
		CityID:       req.CityID,
		Capacity:     req.Capacity,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := c.venueService.CreateVenue(ctx, venue); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      venue,
		Timestamp: time.Now(),
	})
}

// UpdateVenue applies an admin edit
// @Summary Update venue
// @Description Updates a venue's details
// @Tags admin-venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Param request body dto.UpdateVenueRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Venue} "Venue updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Venue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/venues/{id} [put]
func (c *VenueController) UpdateVenue(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid venue data", err)
		return
	}

	venue, err := c.venueService.UpdateVenue(ctx, id, func(v *models.Venue) {
		if req.Name != nil {
			v.Name = *req.Name
		}
		if req.Address != nil {
			v.Address = *req.Address
		}
		if req.Capacity != nil {
			v.Capacity = req.Capacity
		}
		if req.Website != nil {
			v.Website = req.Website
		}
		if req.ContactEmail != nil {
			v.ContactEmail = req.ContactEmail
		}
		if req.ContactPhone != nil {
			v.ContactPhone = req.ContactPhone
		}
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      venue,
		Timestamp: time.Now(),
	})
}

// ApproveVenue verifies a pending venue
// @Summary Approve venue
// @Description Marks a venue as approved
// @Tags admin-venues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.APIResponse "Venue approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Venue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/venues/{id}/approve [post]
func (c *VenueController) ApproveVenue(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.venueService.ApproveVenue(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Venue approved",
		Timestamp: time.Now(),
	})
}

// RejectVenue rejects a venue
// @Summary Reject venue
// @Description Marks a venue as rejected
// @Tags admin-venues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.APIResponse "Venue rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Venue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/venues/{id}/reject [post]
func (c *VenueController) RejectVenue(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.venueService.RejectVenue(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Venue rejected",
		Timestamp: time.Now(),
	})
}

// DeleteVenue removes a venue
// @Summary Delete venue
// @Description Deletes a venue; events keep their stored venue text
// @Tags admin-venues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.APIResponse "Venue deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Venue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/venues/{id} [delete]
func (c *VenueController) DeleteVenue(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.venueService.DeleteVenue(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Venue deleted",
		Timestamp: time.Now(),
	})
}
