package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// Email provider events that kill every subscription for the address
var deactivatingEmailEvents = map[string]bool{
	"unsubscribed": true,
	"spam":         true,
	"bounced":      true,
	"hard_bounce":  true,
	"blocked":      true,
}

// subscriptionStore is the subscription access the service needs
type subscriptionStore interface {
	Upsert(ctx context.Context, email string, cityID uuid.UUID) error
	Deactivate(ctx context.Context, email string, cityID uuid.UUID) error
	DeactivateAllForEmail(ctx context.Context, email string) (int64, error)
	GetAll(ctx context.Context, cityID *uuid.UUID, isActive *bool, search *string, page, pageSize int) ([]models.Subscription, int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
	CountInactive(ctx context.Context) (int, error)
	CountUniqueEmails(ctx context.Context) (int, error)
	CountActiveByCity(ctx context.Context) ([]repositories.CitySubscriptionTally, error)
}

// subscriptionCityStore resolves cities for subscribe and unsubscribe
type subscriptionCityStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.City, error)
}

// SubscriptionService handles city event alert subscriptions
type SubscriptionService struct {
	subscriptionStore subscriptionStore
	cityStore         subscriptionCityStore
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(subscriptionStore subscriptionStore, cityStore subscriptionCityStore) *SubscriptionService {
	return &SubscriptionService{
		subscriptionStore: subscriptionStore,
		cityStore:         cityStore,
	}
}

// Subscribe activates alerts for the address in each requested city.
// Re-subscribing an existing pair reactivates it instead of creating a
// second row.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string, cityIDs []uuid.UUID) (int, error) {
	email = normalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return 0, apperrors.NewBadRequestError("email address is invalid")
	}
	if len(cityIDs) == 0 {
		return 0, apperrors.NewBadRequestError("at least one city is required")
	}

	subscribed := 0
	for _, cityID := range cityIDs {
		city, err := s.cityStore.GetByID(ctx, cityID)
		if err != nil {
			return subscribed, err
		}
		if city == nil {
			return subscribed, apperrors.ErrCityNotFound
		}

		if err := s.subscriptionStore.Upsert(ctx, email, cityID); err != nil {
			return subscribed, err
		}
		subscribed++
	}

	logger.Info().Str("email", email).Int("cities", subscribed).
		Msg("Subscription activated")

	return subscribed, nil
}

// Unsubscribe deactivates the (email, city) pair. Unsubscribing an
// address that was never subscribed is not an error; the link in an
// alert email must always work.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string, cityID uuid.UUID) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.NewBadRequestError("email is required")
	}

	city, err := s.cityStore.GetByID(ctx, cityID)
	if err != nil {
		return err
	}
	if city == nil {
		return apperrors.ErrCityNotFound
	}

	return s.subscriptionStore.Deactivate(ctx, email, city.ID)
}

// HandleEmailEvent processes an inbound email-provider webhook. Events
// that indicate the address should no longer be mailed deactivate all
// of its subscriptions; anything else is acknowledged and dropped.
func (s *SubscriptionService) HandleEmailEvent(ctx context.Context, event, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.NewBadRequestError("email is required")
	}

	if !deactivatingEmailEvents[strings.ToLower(strings.TrimSpace(event))] {
		logger.Debug().Str("event", event).Msg("Ignoring email provider event")
		return nil
	}

	deactivated, err := s.subscriptionStore.DeactivateAllForEmail(ctx, email)
	if err != nil {
		return err
	}

	logger.Info().Str("email", email).Str("event", event).
		Int64("deactivated", deactivated).Msg("Deactivated subscriptions from email event")

	return nil
}

// GetSubscriptions retrieves subscriptions for the admin back-office
func (s *SubscriptionService) GetSubscriptions(ctx context.Context, cityID *uuid.UUID, isActive *bool, search *string, page, pageSize int) ([]models.Subscription, int64, error) {
	return s.subscriptionStore.GetAll(ctx, cityID, isActive, search, page, pageSize)
}

// SetSubscriptionActive toggles one subscription from the admin
// back-office
func (s *SubscriptionService) SetSubscriptionActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.subscriptionStore.SetActive(ctx, id, active); err != nil {
		if isNoRows(err) {
			return apperrors.ErrSubscriptionNotFound
		}
		return err
	}

	return nil
}

// DeleteSubscription removes a subscription outright, unlike
// unsubscribing which keeps the row inactive
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	if err := s.subscriptionStore.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return apperrors.ErrSubscriptionNotFound
		}
		return err
	}

	return nil
}

// GetStats summarizes the subscriber base
func (s *SubscriptionService) GetStats(ctx context.Context) (*dto.SubscriptionStatsResponse, error) {
	active, err := s.subscriptionStore.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	inactive, err := s.subscriptionStore.CountInactive(ctx)
	if err != nil {
		return nil, err
	}

	uniqueEmails, err := s.subscriptionStore.CountUniqueEmails(ctx)
	if err != nil {
		return nil, err
	}

	tallies, err := s.subscriptionStore.CountActiveByCity(ctx)
	if err != nil {
		return nil, err
	}

	byCity := make([]dto.CitySubscriptionCount, 0, len(tallies))
	for _, t := range tallies {
		byCity = append(byCity, dto.CitySubscriptionCount{
			CityID:   t.CityID,
			CityName: t.CityName,
			Count:    t.Count,
		})
	}

	return &dto.SubscriptionStatsResponse{
		TotalActive:   active,
		TotalInactive: inactive,
		UniqueEmails:  uniqueEmails,
		ByCity:        byCity,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
