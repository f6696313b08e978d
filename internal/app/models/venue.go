package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderAddress is stored for venues auto-created during event
// submission, before an admin verifies the real address.
const PlaceholderAddress = "Address to be verified"

// Venue represents a physical event venue. Names are unique per city.
type Venue struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	Address            string             `json:"address" db:"address"`
	CityID             uuid.UUID          `json:"cityId" db:"city_id"`
	Capacity           *int               `json:"capacity,omitempty" db:"capacity"`
	Website            *string            `json:"website,omitempty" db:"website"`
	ContactEmail       *string            `json:"contactEmail,omitempty" db:"contact_email"`
	ContactPhone       *string            `json:"contactPhone,omitempty" db:"contact_phone"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status"`
	EventCount         int                `json:"eventCount" db:"event_count"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}
