package models

import "github.com/google/uuid"

// City represents a city events can be hosted in.
type City struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	State string    `json:"state" db:"state"`
}
