package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is an (email, city) alert registration. The pair is
// unique; re-subscribing reactivates the existing row and unsubscribing
// flips IsActive off without deleting, so history survives.
type Subscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CityID    uuid.UUID `json:"cityId" db:"city_id"`
	CityName  string    `json:"cityName" db:"city_name"`
	State     string    `json:"state" db:"state"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
