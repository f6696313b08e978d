package dto

import "github.com/google/uuid"

// SubscribeRequest registers an email for alerts in one or more cities
type SubscribeRequest struct {
	Email   string      `json:"email" binding:"required,email"`
	CityIDs []uuid.UUID `json:"cityIds" binding:"required,min=1"`
}

// SubscribeResponse reports how many city subscriptions were activated
type SubscribeResponse struct {
	Subscribed int `json:"subscribed"`
}

// EmailWebhookPayload is the inbound email-provider event. Only the
// event type and recipient address are consumed; unknown event types
// are acknowledged and ignored.
type EmailWebhookPayload struct {
	Event string `json:"event" binding:"required" example:"unsubscribed"`
	Email string `json:"email" binding:"required"`
}

// UpdateSubscriptionStatusRequest toggles a subscription's active flag
type UpdateSubscriptionStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CitySubscriptionCount is a per-city active subscriber tally
type CitySubscriptionCount struct {
	CityID   uuid.UUID `json:"cityId"`
	CityName string    `json:"cityName"`
	Count    int       `json:"count"`
}

// SubscriptionStatsResponse summarizes the subscriber base for admins
type SubscriptionStatsResponse struct {
	TotalActive   int                     `json:"totalActive"`
	TotalInactive int                     `json:"totalInactive"`
	UniqueEmails  int                     `json:"uniqueEmails"`
	ByCity        []CitySubscriptionCount `json:"byCity"`
}

// SubscriptionFilterRequest represents admin subscription list filters
type SubscriptionFilterRequest struct {
	CityID   *uuid.UUID `form:"cityId"`
	IsActive *bool      `form:"isActive"`
	Search   *string    `form:"search"`
	Page     int        `form:"page,default=1" binding:"min=1"`
	PageSize int        `form:"pageSize,default=20" binding:"min=1,max=100"`
}
