package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Request DTOs ---

// SubmitEventRequest carries a public event submission. The community
// block is free-form organizer input; it is resolved against existing
// communities server-side rather than referencing one by ID.
type SubmitEventRequest struct {
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description" binding:"required"`
	BannerURL       *string    `json:"bannerUrl,omitempty"`
	Date            time.Time  `json:"date" binding:"required"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Venue           string     `json:"venue" binding:"required"`
	IsOnline        bool       `json:"isOnline"`
	EventType       string     `json:"eventType" binding:"required" example:"Meetup"`
	RegistrationURL string     `json:"registrationUrl" binding:"required,url"`
	CityID          uuid.UUID  `json:"cityId" binding:"required"`

	CommunityName        string   `json:"communityName" binding:"required,max=120"`
	CommunityLogo        *string  `json:"communityLogo,omitempty"`
	CommunityWebsite     *string  `json:"communityWebsite,omitempty"`
	CommunitySocialLinks []string `json:"communitySocialLinks,omitempty"`
	CommunitySize        *int     `json:"communitySize,omitempty"`
	CommunityYearFounded *int     `json:"communityYearFounded,omitempty"`

	OrganizerName  *string `json:"organizerName,omitempty"`
	OrganizerEmail *string `json:"organizerEmail,omitempty"`
	OrganizerPhone *string `json:"organizerPhone,omitempty"`
}

// UpdateEventRequest represents an admin edit of a live event.
// Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	BannerURL       *string    `json:"bannerUrl,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Venue           *string    `json:"venue,omitempty"`
	IsOnline        *bool      `json:"isOnline,omitempty"`
	EventType       *string    `json:"eventType,omitempty"`
	RegistrationURL *string    `json:"registrationUrl,omitempty"`
	Featured        *bool      `json:"featured,omitempty"`
}

// EventFilterRequest represents event list filter parameters
type EventFilterRequest struct {
	CityID    *uuid.UUID `form:"cityId"`
	EventType *string    `form:"eventType"`
	Featured  *bool      `form:"featured"`
	Upcoming  *bool      `form:"upcoming"`
	Search    *string    `form:"search"`
	Status    *string    `form:"status"`
	Page      int        `form:"page,default=1" binding:"min=1"`
	PageSize  int        `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// ArchivedEventFilterRequest represents archive list filter parameters
type ArchivedEventFilterRequest struct {
	CityID      *uuid.UUID `form:"cityId"`
	CommunityID *uuid.UUID `form:"communityId"`
	EventType   *string    `form:"eventType"`
	Featured    *bool      `form:"featured"`
	Search      *string    `form:"search"`
	Page        int        `form:"page,default=1" binding:"min=1"`
	PageSize    int        `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// SetFeaturedRequest toggles the featured flag on an event
type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}

// --- Response DTOs ---

// SubmitEventResponse reports the outcome of a public submission
type SubmitEventResponse struct {
	EventID     uuid.UUID `json:"eventId"`
	CommunityID uuid.UUID `json:"communityId"`
	Status      string    `json:"status" example:"pending"`
}

// SweepResponse reports an archival sweep outcome
type SweepResponse struct {
	Scanned  int `json:"scanned"`
	Archived int `json:"archived"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
