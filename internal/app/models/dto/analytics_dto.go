package dto

import "github.com/google/uuid"

// CityEventCount is a per-city event tally across live and archived events
type CityEventCount struct {
	CityID   uuid.UUID `json:"cityId"`
	CityName string    `json:"cityName"`
	Count    int       `json:"count"`
}

// EventTypeCount is a per-type event tally
type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

// CityClickCount is a per-city registration click tally
type CityClickCount struct {
	CityID   uuid.UUID `json:"cityId"`
	CityName string    `json:"cityName"`
	Clicks   int       `json:"clicks"`
}

// MonthlyClickCount is a per-month registration click tally
type MonthlyClickCount struct {
	Month  string `json:"month" example:"2026-03"`
	Clicks int    `json:"clicks"`
}

// CommunityClickCount is a per-community registration click tally.
// CommunityID is omitted for communities deleted after archival.
type CommunityClickCount struct {
	CommunityID   *uuid.UUID `json:"communityId,omitempty"`
	CommunityName string     `json:"communityName"`
	Clicks        int        `json:"clicks"`
}

// ClickAnalyticsResponse breaks registration clicks down for the admin
// dashboard
type ClickAnalyticsResponse struct {
	TotalClicks int                   `json:"totalClicks"`
	ByCity      []CityClickCount      `json:"byCity"`
	ByMonth     []MonthlyClickCount   `json:"byMonth"`
	ByCommunity []CommunityClickCount `json:"byCommunity"`
}

// AnalyticsResponse is the admin dashboard summary. GrowthRate and
// ConversionRate are reserved fields and currently always zero.
type AnalyticsResponse struct {
	TotalEvents         int              `json:"totalEvents"`
	PendingEvents       int              `json:"pendingEvents"`
	ApprovedEvents      int              `json:"approvedEvents"`
	ArchivedEvents      int              `json:"archivedEvents"`
	TotalCommunities    int              `json:"totalCommunities"`
	PendingCommunities  int              `json:"pendingCommunities"`
	TotalVenues         int              `json:"totalVenues"`
	ActiveSubscriptions int              `json:"activeSubscriptions"`
	RegistrationClicks  int              `json:"registrationClicks"`
	GrowthRate          float64          `json:"growthRate"`
	ConversionRate      float64          `json:"conversionRate"`
	EventsByCity        []CityEventCount `json:"eventsByCity"`
	EventsByType        []EventTypeCount `json:"eventsByType"`
}
