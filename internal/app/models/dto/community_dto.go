package dto

import "github.com/google/uuid"

// --- Request DTOs ---

// UpdateCommunityRequest represents an admin edit of a community.
// Nil fields are left unchanged.
type UpdateCommunityRequest struct {
	Name           *string  `json:"name,omitempty"`
	Logo           *string  `json:"logo,omitempty"`
	Website        *string  `json:"website,omitempty"`
	SocialLinks    []string `json:"socialLinks,omitempty"`
	Size           *int     `json:"size,omitempty"`
	YearFounded    *int     `json:"yearFounded,omitempty"`
	PreviousEvents []string `json:"previousEvents,omitempty"`
	ContactEmail   *string  `json:"contactEmail,omitempty"`
	ContactPhone   *string  `json:"contactPhone,omitempty"`
}

// TransferEventsRequest moves all of a community's live events to
// another community
type TransferEventsRequest struct {
	TargetCommunityID uuid.UUID `json:"targetCommunityId" binding:"required"`
}

// CommunityFilterRequest represents community list filter parameters
type CommunityFilterRequest struct {
	CityID   *uuid.UUID `form:"cityId"`
	Status   *string    `form:"status"`
	Search   *string    `form:"search"`
	Page     int        `form:"page,default=1" binding:"min=1"`
	PageSize int        `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// ResolveDuplicateRequest resolves a flagged duplicate candidate
type ResolveDuplicateRequest struct {
	Notes string `json:"notes,omitempty"`
}
