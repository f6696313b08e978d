package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/helpers"
)

// SubscriptionController handles email alert subscriptions
type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
	webhookSecret       string
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService *services.SubscriptionService, webhookSecret string) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		webhookSecret:       webhookSecret,
	}
}

// Subscribe subscribes an email to city event alerts
// @Summary Subscribe to alerts
// @Description Subscribes an email address to event alerts for one or more cities
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Email and cities"
// @Success 200 {object} dto.APIResponse{data=dto.SubscribeResponse} "Subscribed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions [post]
func (c *SubscriptionController) Subscribe(ctx *gin.Context) {
	var req dto.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid subscription request", err)
		return
	}

	subscribed, err := c.subscriptionService.Subscribe(ctx, req.Email, req.CityIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.SubscribeResponse{Subscribed: subscribed},
		Timestamp: time.Now(),
	})
}

// Unsubscribe deactivates a subscription from an email link
// @Summary Unsubscribe from alerts
// @Description Deactivates a subscription; always succeeds for valid parameters
// @Tags subscriptions
// @Produce json
// @Param email query string true "Subscriber email"
// @Param city query string true "City ID"
// @Success 200 {object} dto.APIResponse "Unsubscribed"
// @Failure 400 {object} dto.ErrorResponse "Missing email or invalid city ID"
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /unsubscribe [get]
func (c *SubscriptionController) Unsubscribe(ctx *gin.Context) {
	email := ctx.Query("email")
	city := ctx.Query("city")
	if email == "" || city == "" {
		middleware.HandleAPIError(ctx, apperrors.ErrValidationFailed)
		return
	}

	cityID, err := uuid.Parse(city)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("city must be a valid city ID"))
		return
	}

	if err := c.subscriptionService.Unsubscribe(ctx, email, cityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "You have been unsubscribed",
		Timestamp: time.Now(),
	})
}

// HandleEmailWebhook processes delivery events from the email provider
// @Summary Email provider webhook
// @Description Deactivates all subscriptions for addresses that unsubscribe, bounce or complain
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Param request body dto.EmailWebhookPayload true "Provider event"
// @Success 200 {object} dto.APIResponse "Event processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 401 {object} dto.ErrorResponse "Invalid webhook secret"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /webhooks/email [post]
func (c *SubscriptionController) HandleEmailWebhook(ctx *gin.Context) {
	if c.webhookSecret != "" {
		provided := ctx.GetHeader("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(c.webhookSecret)) != 1 {
			middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredentials)
			return
		}
	}

	var payload dto.EmailWebhookPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		bindingError(ctx, "Invalid webhook payload", err)
		return
	}

	if err := c.subscriptionService.HandleEmailEvent(ctx, payload.Event, payload.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Event processed",
		Timestamp: time.Now(),
	})
}

// GetSubscriptions retrieves subscriptions for administration
// @Summary List subscriptions
// @Description Retrieves subscriptions with optional city, activity and search filters
// @Tags admin-subscriptions
// @Produce json
// @Security BearerAuth
// @Param cityId query string false "Filter by city ID"
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Search in email addresses"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Subscriptions retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subscriptions [get]
func (c *SubscriptionController) GetSubscriptions(ctx *gin.Context) {
	cityID, ok := parseUUIDQuery(ctx, "cityId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	subscriptions, total, err := c.subscriptionService.GetSubscriptions(ctx, cityID,
		optionalBool(ctx, "isActive"), optionalString(ctx, "search"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      subscriptions,
			Pagination: helpers.NewPaginationInfo(total, page, pageSize),
		},
		Timestamp: time.Now(),
	})
}

// UpdateSubscriptionStatus toggles a subscription's active flag
// @Summary Update subscription status
// @Description Activates or deactivates a single subscription
// @Tags admin-subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Param request body dto.UpdateSubscriptionStatusRequest true "Active flag"
// @Success 200 {object} dto.APIResponse "Subscription updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subscriptions/{id} [patch]
func (c *SubscriptionController) UpdateSubscriptionStatus(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid subscription status", err)
		return
	}

	if err := c.subscriptionService.SetSubscriptionActive(ctx, id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Subscription updated successfully",
		Timestamp: time.Now(),
	})
}

// DeleteSubscription removes a subscription
// @Summary Delete subscription
// @Description Removes a subscription record entirely
// @Tags admin-subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.APIResponse "Subscription deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subscriptions/{id} [delete]
func (c *SubscriptionController) DeleteSubscription(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.subscriptionService.DeleteSubscription(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Subscription deleted successfully",
		Timestamp: time.Now(),
	})
}

// GetStats retrieves subscription totals
// @Summary Subscription statistics
// @Description Retrieves active and inactive totals plus a per-city breakdown
// @Tags admin-subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SubscriptionStatsResponse} "Statistics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subscriptions/stats [get]
func (c *SubscriptionController) GetStats(ctx *gin.Context) {
	stats, err := c.subscriptionService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      stats,
		Timestamp: time.Now(),
	})
}
