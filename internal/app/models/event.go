package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a live event record. Venue holds the display text entered by
// the organizer; VenueID is the resolved stable reference and is nil for
// online events. Invariant: EndDate, when set, is never before Date.
type Event struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	Title              string      `json:"title" db:"title"`
	Description        string      `json:"description" db:"description"`
	BannerURL          *string     `json:"bannerUrl,omitempty" db:"banner_url"`
	Date               time.Time   `json:"date" db:"date"`
	EndDate            *time.Time  `json:"endDate,omitempty" db:"end_date"`
	Venue              string      `json:"venue" db:"venue"`
	VenueID            *uuid.UUID  `json:"venueId,omitempty" db:"venue_id"`
	IsOnline           bool        `json:"isOnline" db:"is_online"`
	EventType          EventType   `json:"eventType" db:"event_type"`
	CommunityID        uuid.UUID   `json:"communityId" db:"community_id"`
	OrganizerName      *string     `json:"organizerName,omitempty" db:"organizer_name"`
	OrganizerEmail     *string     `json:"organizerEmail,omitempty" db:"organizer_email"`
	OrganizerPhone     *string     `json:"organizerPhone,omitempty" db:"organizer_phone"`
	RegistrationURL    string      `json:"registrationUrl" db:"registration_url"`
	RegistrationClicks int         `json:"registrationClicks" db:"registration_clicks"`
	CityID             uuid.UUID   `json:"cityId" db:"city_id"`
	Status             EventStatus `json:"status" db:"status"`
	Featured           bool        `json:"featured" db:"featured"`
	CreatedAt          time.Time   `json:"createdAt" db:"created_at"`

	// Joined display fields, populated by list/detail queries.
	CommunityName string  `json:"communityName,omitempty"`
	CommunityLogo *string `json:"communityLogo,omitempty"`
	CityName      string  `json:"cityName,omitempty"`
}

// ArchivedEvent is the append-only snapshot taken when a live event is
// swept past its end date. Its ID is the source event's ID, which makes
// the archive insert idempotent. CommunityName is denormalized at
// archive time so the snapshot survives community merges and deletions.
type ArchivedEvent struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	Date               time.Time  `json:"date" db:"date"`
	EndDate            *time.Time `json:"endDate,omitempty" db:"end_date"`
	Venue              string     `json:"venue" db:"venue"`
	IsOnline           bool       `json:"isOnline" db:"is_online"`
	EventType          EventType  `json:"eventType" db:"event_type"`
	CommunityID        *uuid.UUID `json:"communityId,omitempty" db:"community_id"`
	CommunityName      string     `json:"communityName" db:"community_name"`
	CityID             uuid.UUID  `json:"cityId" db:"city_id"`
	Featured           bool       `json:"featured" db:"featured"`
	BannerURL          *string    `json:"bannerUrl,omitempty" db:"banner_url"`
	RegistrationClicks int        `json:"registrationClicks" db:"registration_clicks"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	ArchivedAt         time.Time  `json:"archivedAt" db:"archived_at"`
}

// SweepLog records one archival sweep run for the admin back-office.
type SweepLog struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Action     string         `json:"action" db:"action"`
	Result     map[string]int `json:"result,omitempty" db:"result"`
	Error      *string        `json:"error,omitempty" db:"error"`
	ExecutedAt time.Time      `json:"executedAt" db:"executed_at"`
}
