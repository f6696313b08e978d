package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
	"github.com/loopinhq/backend/internal/pkg/helpers"
)

// CommunityController handles community listings, moderation and duplicate review
type CommunityController struct {
	communityService *services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService *services.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

// GetCommunities retrieves communities
// @Summary List communities
// @Description Retrieves communities with optional city, status and search filters
// @Tags communities
// @Produce json
// @Param cityId query string false "Filter by city ID"
// @Param status query string false "Filter by verification status"
// @Param search query string false "Search in community names"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Communities retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communities [get]
func (c *CommunityController) GetCommunities(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	communities, total, err := c.communityService.GetCommunities(ctx, cityID,
		optionalString(ctx, "status"), optionalString(ctx, "search"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      communities,
			Pagination: helpers.NewPaginationInfo(total, page, pageSize),
		},
		Timestamp: time.Now(),
	})
}

// GetCommunity retrieves a single community
// @Summary Get community
// @Description Retrieves a single community by ID
// @Tags communities
// @Produce json
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse{data=models.Community} "Community retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid community ID"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /communities/{id} [get]
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	community, err := c.communityService.GetCommunity(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      community,
		Timestamp: time.Now(),
	})
}

// UpdateCommunity applies an admin edit
// @Summary Update community
// @Description Updates a community's profile details
// @Tags admin-communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Param request body dto.UpdateCommunityRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Community} "Community updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/communities/{id} [put]
func (c *CommunityController) UpdateCommunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid community data", err)
		return
	}

	community, err := c.communityService.UpdateCommunity(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      community,
		Timestamp: time.Now(),
	})
}

// ApproveCommunity verifies a pending community
// @Summary Approve community
// @Description Marks a community as verified
// @Tags admin-communities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse "Community approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/communities/{id}/approve [post]
func (c *CommunityController) ApproveCommunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communityService.ApproveCommunity(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Community approved",
		Timestamp: time.Now(),
	})
}

// RejectCommunity rejects a community
// @Summary Reject community
// @Description Marks a community as rejected
// @Tags admin-communities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse "Community rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/communities/{id}/reject [post]
func (c *CommunityController) RejectCommunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communityService.RejectCommunity(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Community rejected",
		Timestamp: time.Now(),
	})
}

// DeleteCommunity removes a community without live events
// @Summary Delete community
// @Description Deletes a community; refused while it still owns live events
// @Tags admin-communities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} dto.APIResponse "Community deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 409 {object} dto.ErrorResponse "Community still has live events"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/communities/{id} [delete]
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communityService.DeleteCommunity(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Community deleted",
		Timestamp: time.Now(),
	})
}

// TransferEvents moves every live event to another community
// @Summary Transfer events
// @Description Moves all live events from one community to another
// @Tags admin-communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Source community ID"
// @Param request body dto.TransferEventsRequest true "Target community"
// @Success 200 {object} dto.APIResponse "Events transferred"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/communities/{id}/transfer-events [post]
func (c *CommunityController) TransferEvents(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TransferEventsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid transfer request", err)
		return
	}

	moved, err := c.communityService.TransferEvents(ctx, id, req.TargetCommunityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      gin.H{"movedEvents": moved},
		Timestamp: time.Now(),
	})
}

// GetDuplicates retrieves duplicate candidates awaiting review
// @Summary List duplicate candidates
// @Description Retrieves flagged community duplicates, highest similarity first
// @Tags admin-communities
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by review status"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Duplicates retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/duplicates [get]
func (c *CommunityController) GetDuplicates(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	duplicates, total, err := c.communityService.GetDuplicates(ctx, optionalString(ctx, "status"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      duplicates,
			Pagination: helpers.NewPaginationInfo(total, page, pageSize),
		},
		Timestamp: time.Now(),
	})
}

// MergeDuplicate merges the flagged community into the original
// @Summary Merge duplicate
// @Description Moves the duplicate's events to the original community and deletes the duplicate
// @Tags admin-communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Duplicate candidate ID"
// @Param request body dto.ResolveDuplicateRequest false "Review notes"
// @Success 200 {object} dto.APIResponse "Duplicate merged"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Duplicate candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/duplicates/{id}/merge [post]
func (c *CommunityController) MergeDuplicate(ctx *gin.Context) {
	c.resolveDuplicate(ctx, c.communityService.MergeDuplicate, "Duplicate merged")
}

// KeepSeparate records that two flagged communities are distinct
// @Summary Keep communities separate
// @Description Marks a duplicate candidate as two distinct communities
// @Tags admin-communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Duplicate candidate ID"
// @Param request body dto.ResolveDuplicateRequest false "Review notes"
// @Success 200 {object} dto.APIResponse "Communities kept separate"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Duplicate candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/duplicates/{id}/keep-separate [post]
func (c *CommunityController) KeepSeparate(ctx *gin.Context) {
	c.resolveDuplicate(ctx, c.communityService.KeepSeparate, "Communities kept separate")
}

// MarkForInvestigation parks a duplicate for a closer look
// @Summary Mark duplicate for investigation
// @Description Parks a duplicate candidate until an admin can look closer
// @Tags admin-communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Duplicate candidate ID"
// @Param request body dto.ResolveDuplicateRequest false "Review notes"
// @Success 200 {object} dto.APIResponse "Duplicate marked for investigation"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Duplicate candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/duplicates/{id}/investigate [post]
func (c *CommunityController) MarkForInvestigation(ctx *gin.Context) {
	c.resolveDuplicate(ctx, c.communityService.MarkForInvestigation, "Duplicate marked for investigation")
}

func (c *CommunityController) resolveDuplicate(ctx *gin.Context, resolve func(context.Context, uuid.UUID, string, string) error, message string) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveDuplicateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			bindingError(ctx, "Invalid review notes", err)
			return
		}
	}

	reviewedBy := ctx.GetString(middleware.AdminUsernameKey)
	if err := resolve(ctx, id, req.Notes, reviewedBy); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	})
}
