package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models/dto"
)

// Controllers defined in this package:
// - AuthController: admin login
// - CityController: supported-cities catalogue
// - EventController: event submission, listings and moderation
// - CommunityController: communities and duplicate review
// - VenueController: venue management
// - SubscriptionController: alert subscriptions and email webhooks
// - LeaderboardController: community and venue rankings
// - AnalyticsController: admin dashboard summary

// parseUUIDParam reads a UUID path parameter, writing the error
// response itself when the value is malformed
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier").
			WithField(name).
			WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}

	return id, true
}

// parseUUIDQuery reads an optional UUID query parameter
func parseUUIDQuery(ctx *gin.Context, name string) (*uuid.UUID, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}

	id, err := uuid.Parse(value)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier").
			WithField(name).
			WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return &id, true
}

// optionalString reads an optional string query parameter
func optionalString(ctx *gin.Context, name string) *string {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	return &value
}

// optionalBool reads an optional boolean query parameter; malformed
// values are treated as absent
func optionalBool(ctx *gin.Context, name string) *bool {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func bindingError(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
