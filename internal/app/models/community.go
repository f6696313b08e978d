package models

import (
	"time"

	"github.com/google/uuid"
)

// Community represents an organizer community that hosts events.
// EventCount is a denormalized leaderboard counter incremented when an
// event is archived; it is never decremented.
type Community struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	Logo               *string            `json:"logo,omitempty" db:"logo"`
	CityID             uuid.UUID          `json:"cityId" db:"city_id"`
	Website            *string            `json:"website,omitempty" db:"website"`
	SocialLinks        []string           `json:"socialLinks,omitempty" db:"social_links"`
	Size               *int               `json:"size,omitempty" db:"size"`
	YearFounded        *int               `json:"yearFounded,omitempty" db:"year_founded"`
	PreviousEvents     []string           `json:"previousEvents,omitempty" db:"previous_events"`
	ContactEmail       *string            `json:"contactEmail,omitempty" db:"contact_email"`
	ContactPhone       *string            `json:"contactPhone,omitempty" db:"contact_phone"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status"`
	EventCount         int                `json:"eventCount" db:"event_count"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}
