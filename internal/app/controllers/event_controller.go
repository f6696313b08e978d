package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
	"github.com/loopinhq/backend/internal/pkg/helpers"
)

// EventController handles event submission, listings and moderation
type EventController struct {
	eventService   *services.EventService
	archiveService *services.ArchiveService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, archiveService *services.ArchiveService) *EventController {
	return &EventController{
		eventService:   eventService,
		archiveService: archiveService,
	}
}

func eventFilterFromQuery(ctx *gin.Context) (repositories.EventFilter, bool) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return repositories.EventFilter{}, false
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	return repositories.EventFilter{
		CityID:    cityID,
		EventType: optionalString(ctx, "eventType"),
		Featured:  optionalBool(ctx, "featured"),
		Upcoming:  optionalBool(ctx, "upcoming"),
		Search:    optionalString(ctx, "search"),
		Page:      page,
		PageSize:  pageSize,
	}, true
}

// GetEvents retrieves approved events
// @Summary List events
// @Description Retrieves approved events with optional city, type, featured and upcoming filters
// @Tags events
// @Produce json
// @Param cityId query string false "Filter by city ID"
// @Param eventType query string false "Filter by event type"
// @Param featured query bool false "Only featured events"
// @Param upcoming query bool false "Only events that have not ended"
// @Param search query string false "Search in title and community name"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	c.listEvents(ctx, false)
}

// GetAdminEvents retrieves events of any status for moderation
// @Summary List events for moderation
// @Description Retrieves events with an explicit status filter, pending first
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param cityId query string false "Filter by city ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events [get]
func (c *EventController) GetAdminEvents(ctx *gin.Context) {
	c.listEvents(ctx, true)
}

func (c *EventController) listEvents(ctx *gin.Context, adminView bool) {
	filter, ok := eventFilterFromQuery(ctx)
	if !ok {
		return
	}
	if adminView {
		filter.Status = optionalString(ctx, "status")
	}

	events, total, err := c.eventService.GetEvents(ctx, filter, adminView)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      events,
			Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
		},
		Timestamp: time.Now(),
	})
}

// GetEvent retrieves a single event
// @Summary Get event
// @Description Retrieves a single event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// SubmitEvent accepts a public event submission
// @Summary Submit event
// @Description Submits an event for review; the community and venue are resolved automatically
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.SubmitEventRequest true "Event submission"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitEventResponse} "Event submitted for review"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) SubmitEvent(ctx *gin.Context) {
	var req dto.SubmitEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid event submission", err)
		return
	}

	event, err := c.eventService.SubmitEvent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Data: dto.SubmitEventResponse{
			EventID:     event.ID,
			CommunityID: event.CommunityID,
			Status:      string(event.Status),
		},
		Timestamp: time.Now(),
	})
}

// RegisterClick counts a registration link click
// @Summary Count registration click
// @Description Increments the event's registration click counter
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Click counted"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/register-click [post]
func (c *EventController) RegisterClick(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.RegisterClick(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Click counted",
		Timestamp: time.Now(),
	})
}

// ApproveEvent publishes a pending or rejected event
// @Summary Approve event
// @Description Publishes a pending or rejected event and alerts city subscribers
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is already approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id}/approve [post]
func (c *EventController) ApproveEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.ApproveEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event approved",
		Timestamp: time.Now(),
	})
}

// RejectEvent takes an event off the board
// @Summary Reject event
// @Description Rejects a pending or published event
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is already rejected"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id}/reject [post]
func (c *EventController) RejectEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.RejectEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event rejected",
		Timestamp: time.Now(),
	})
}

// UpdateEvent applies an admin edit
// @Summary Update event
// @Description Updates a live event's details
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid event data", err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// SetFeatured toggles an event's featured flag
// @Summary Feature event
// @Description Marks or unmarks an event as featured
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.SetFeaturedRequest true "Featured flag"
// @Success 200 {object} dto.APIResponse "Event updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id}/featured [put]
func (c *EventController) SetFeatured(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetFeaturedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid request data", err)
		return
	}

	if err := c.eventService.SetFeatured(ctx, id, req.Featured); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event updated",
		Timestamp: time.Now(),
	})
}

// DeleteEvent removes a live event
// @Summary Delete event
// @Description Deletes a live event without archiving it
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event deleted",
		Timestamp: time.Now(),
	})
}

// GetArchivedEvents retrieves archived events
// @Summary List archived events
// @Description Retrieves archived events with optional filters
// @Tags archive
// @Produce json
// @Param cityId query string false "Filter by city ID"
// @Param communityId query string false "Filter by community ID"
// @Param eventType query string false "Filter by event type"
// @Param featured query bool false "Only featured events"
// @Param search query string false "Search in title and community name"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Archived events retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /archived-events [get]
func (c *EventController) GetArchivedEvents(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}
	communityID, ok := parseUUIDQuery(ctx, "communityId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := repositories.ArchivedEventFilter{
		CityID:      cityID,
		CommunityID: communityID,
		EventType:   optionalString(ctx, "eventType"),
		Featured:    optionalBool(ctx, "featured"),
		Search:      optionalString(ctx, "search"),
		Page:        page,
		PageSize:    pageSize,
	}

	events, total, err := c.archiveService.GetArchivedEvents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      events,
			Pagination: helpers.NewPaginationInfo(total, page, pageSize),
		},
		Timestamp: time.Now(),
	})
}

// GetArchivedEvent retrieves a single archived event
// @Summary Get archived event
// @Description Retrieves a single archived event by ID
// @Tags archive
// @Produce json
// @Param id path string true "Archived event ID"
// @Success 200 {object} dto.APIResponse{data=models.ArchivedEvent} "Archived event retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Archived event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /archived-events/{id} [get]
func (c *EventController) GetArchivedEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.archiveService.GetArchivedEvent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// ArchiveEvent archives a single event immediately
// @Summary Archive event
// @Description Snapshots an approved event into the archive and removes the live row
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event archived"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is not approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/{id}/archive [post]
func (c *EventController) ArchiveEvent(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.archiveService.ArchiveEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event archived",
		Timestamp: time.Now(),
	})
}

// SetArchivedFeatured toggles an archived event's featured flag
// @Summary Feature archived event
// @Description Marks or unmarks an archived event as featured
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Archived event ID"
// @Param request body dto.SetFeaturedRequest true "Featured flag"
// @Success 200 {object} dto.APIResponse "Archived event updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Archived event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/archived-events/{id}/featured [put]
func (c *EventController) SetArchivedFeatured(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetFeaturedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid request data", err)
		return
	}

	if err := c.archiveService.SetArchivedFeatured(ctx, id, req.Featured); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Archived event updated",
		Timestamp: time.Now(),
	})
}

// Sweep runs the archival sweep immediately
// @Summary Run archival sweep
// @Description Archives every approved event whose end date has passed
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SweepResponse} "Sweep finished"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/sweep [post]
func (c *EventController) Sweep(ctx *gin.Context) {
	result, err := c.archiveService.Sweep(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.SweepResponse{
			Scanned:  result.Scanned,
			Archived: result.Archived,
			Skipped:  result.Skipped,
			Failed:   result.Failed,
		},
		Timestamp: time.Now(),
	})
}

// GetSweepLogs retrieves recent sweep runs
// @Summary List sweep logs
// @Description Retrieves the most recent archival sweep runs
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of runs"
// @Success 200 {object} dto.APIResponse{data=[]models.SweepLog} "Sweep logs retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events/sweep/logs [get]
func (c *EventController) GetSweepLogs(ctx *gin.Context) {
	limit := 20
	if value := ctx.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			limit = parsed
		}
	}

	logs, err := c.archiveService.GetSweepLogs(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      logs,
		Timestamp: time.Now(),
	})
}
