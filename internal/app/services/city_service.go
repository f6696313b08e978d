package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/dberrors"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// cityStore is the city access the service needs
type cityStore interface {
	GetAll(ctx context.Context) ([]models.City, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.City, error)
	Create(ctx context.Context, city *models.City) error
	Update(ctx context.Context, city *models.City) error
	HasRelations(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CityService handles the supported-cities catalogue
type CityService struct {
	cityStore cityStore
}

// NewCityService creates a new city service instance
func NewCityService(cityStore cityStore) *CityService {
	return &CityService{cityStore: cityStore}
}

// GetCities retrieves all supported cities
func (s *CityService) GetCities(ctx context.Context) ([]models.City, error) {
	return s.cityStore.GetAll(ctx)
}

// GetCity retrieves a single city
func (s *CityService) GetCity(ctx context.Context, id uuid.UUID) (*models.City, error) {
	city, err := s.cityStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, apperrors.ErrCityNotFound
	}

	return city, nil
}

// CreateCity adds a city to the catalogue
func (s *CityService) CreateCity(ctx context.Context, city *models.City) error {
	city.Name = validation.NormalizeName(city.Name)
	city.State = validation.NormalizeName(city.State)

	if err := s.cityStore.Create(ctx, city); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCityAlreadyExists
		}
		return err
	}

	return nil
}

// UpdateCity renames a city
func (s *CityService) UpdateCity(ctx context.Context, id uuid.UUID, name, state string) (*models.City, error) {
	city, err := s.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}

	city.Name = validation.NormalizeName(name)
	city.State = validation.NormalizeName(state)

	if err := s.cityStore.Update(ctx, city); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrCityAlreadyExists
		}
		return nil, err
	}

	return city, nil
}

// DeleteCity removes a city. Cities with communities, venues, events
// or subscribers cannot be deleted.
func (s *CityService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCity(ctx, id); err != nil {
		return err
	}

	hasRelations, err := s.cityStore.HasRelations(ctx, id)
	if err != nil {
		return err
	}
	if hasRelations {
		return apperrors.ErrCityHasRelations
	}

	return s.cityStore.Delete(ctx, id)
}
