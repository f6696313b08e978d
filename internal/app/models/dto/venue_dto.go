package dto

import "github.com/google/uuid"

// CreateVenueRequest represents admin venue creation data
type CreateVenueRequest struct {
	Name         string    `json:"name" binding:"required,max=120"`
	Address      string    `json:"address" binding:"required"`
	CityID       uuid.UUID `json:"cityId" binding:"required"`
	Capacity     *int      `json:"capacity,omitempty"`
	Website      *string   `json:"website,omitempty"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
}

// UpdateVenueRequest represents an admin edit of a venue.
// Nil fields are left unchanged.
type UpdateVenueRequest struct {
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	Capacity     *int    `json:"capacity,omitempty"`
	Website      *string `json:"website,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// VenueFilterRequest represents venue list filter parameters
type VenueFilterRequest struct {
	CityID   *uuid.UUID `form:"cityId"`
	Status   *string    `form:"status"`
	Search   *string    `form:"search"`
	Page     int        `form:"page,default=1" binding:"min=1"`
	PageSize int        `form:"pageSize,default=20" binding:"min=1,max=100"`
}
