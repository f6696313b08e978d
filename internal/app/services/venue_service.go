package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/dberrors"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// venueStore is the venue access the service needs
type venueStore interface {
	GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Venue, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error)
	GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Venue, error)
	SearchByName(ctx context.Context, name string, cityID uuid.UUID) ([]models.Venue, error)
	Create(ctx context.Context, v *models.Venue) error
	Update(ctx context.Context, v *models.Venue) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VenueService handles venue management and venue resolution during
// event submission
type VenueService struct {
	venueStore venueStore
}

// NewVenueService creates a new venue service instance
func NewVenueService(venueStore venueStore) *VenueService {
	return &VenueService{venueStore: venueStore}
}

// Resolve maps organizer-entered venue text to a venue row. The chain
// never dead-ends: when nothing matches, a pending venue is created
// with a placeholder address for later admin verification.
func (s *VenueService) Resolve(ctx context.Context, name string, cityID uuid.UUID) (*models.Venue, error) {
	name = validation.NormalizeName(name)

	approved, err := s.venueStore.GetByNameAndCity(ctx, name, cityID, models.VerificationApproved)
	if err != nil {
		return nil, err
	}
	if approved != nil {
		return approved, nil
	}

	// Substring hits still require an exact name to avoid attaching an
	// event to the wrong hall of a shared building
	candidates, err := s.venueStore.SearchByName(ctx, name, cityID)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if strings.EqualFold(strings.TrimSpace(candidates[i].Name), name) {
			return &candidates[i], nil
		}
	}

	pending, err := s.venueStore.GetByNameAndCity(ctx, name, cityID, models.VerificationPending)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return pending, nil
	}

	venue := &models.Venue{
		Name:               name,
		Address:            models.PlaceholderAddress,
		CityID:             cityID,
		VerificationStatus: models.VerificationPending,
	}
	if err := s.venueStore.Create(ctx, venue); err != nil {
		return nil, err
	}

	logger.Info().Str("venue", name).Msg("Created pending venue from event submission")
	return venue, nil
}

// GetVenues retrieves venues with filtering and pagination
func (s *VenueService) GetVenues(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Venue, int64, error) {
	return s.venueStore.GetAll(ctx, cityID, status, search, page, pageSize)
}

// GetVenue retrieves a single venue
func (s *VenueService) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	venue, err := s.venueStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, apperrors.ErrVenueNotFound
	}

	return venue, nil
}

// CreateVenue creates an admin-entered venue, approved immediately
func (s *VenueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	venue.Name = validation.NormalizeName(venue.Name)
	venue.VerificationStatus = models.VerificationApproved

	if err := s.venueStore.Create(ctx, venue); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrVenueAlreadyExists
		}
		return err
	}

	return nil
}

// UpdateVenue applies an admin edit to a venue
func (s *VenueService) UpdateVenue(ctx context.Context, id uuid.UUID, apply func(*models.Venue)) (*models.Venue, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(venue)
	venue.Name = validation.NormalizeName(venue.Name)

	if err := s.venueStore.Update(ctx, venue); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrVenueAlreadyExists
		}
		return nil, err
	}

	return venue, nil
}

// ApproveVenue marks a pending venue as verified
func (s *VenueService) ApproveVenue(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return err
	}
	return s.venueStore.UpdateStatus(ctx, id, models.VerificationApproved)
}

// RejectVenue marks a venue as rejected
func (s *VenueService) RejectVenue(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return err
	}
	return s.venueStore.UpdateStatus(ctx, id, models.VerificationRejected)
}

// DeleteVenue removes a venue
func (s *VenueService) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return err
	}
	return s.venueStore.Delete(ctx, id)
}
