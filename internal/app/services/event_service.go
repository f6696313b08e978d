package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/alerts"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// onlineVenueLabel is stored as the venue text for online events that
// did not provide one
const onlineVenueLabel = "Online"

// notifyTimeout bounds the background alert call after an approval
const notifyTimeout = 15 * time.Second

// eventStore is the event access the service needs
type eventStore interface {
	GetAll(ctx context.Context, f repositories.EventFilter) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	IncrementRegistrationClicks(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// cityLookup resolves the target city of a submission
type cityLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.City, error)
}

// communityResolver attaches a submission to a community
type communityResolver interface {
	Resolve(ctx context.Context, profile CommunityProfile) (*models.Community, error)
}

// venueResolver attaches a submission to a venue
type venueResolver interface {
	Resolve(ctx context.Context, name string, cityID uuid.UUID) (*models.Venue, error)
}

// EventService handles event submission, moderation and listings
type EventService struct {
	eventStore        eventStore
	cityStore         cityLookup
	communityResolver communityResolver
	venueResolver     venueResolver
	notifier          alerts.Notifier
	baseURL           string
}

// NewEventService creates a new event service instance
func NewEventService(eventStore eventStore, cityStore cityLookup, communityResolver communityResolver, venueResolver venueResolver, notifier alerts.Notifier, baseURL string) *EventService {
	return &EventService{
		eventStore:        eventStore,
		cityStore:         cityStore,
		communityResolver: communityResolver,
		venueResolver:     venueResolver,
		notifier:          notifier,
		baseURL:           strings.TrimRight(baseURL, "/"),
	}
}

// SubmitEvent processes a public submission: validates the payload,
// resolves the community and venue, and creates the event as pending.
func (s *EventService) SubmitEvent(ctx context.Context, req *dto.SubmitEventRequest) (*models.Event, error) {
	if !models.ValidEventType(models.EventType(req.EventType)) {
		return nil, apperrors.ErrInvalidEventType
	}
	if req.EndDate != nil && req.EndDate.Before(req.Date) {
		return nil, apperrors.ErrInvalidDateRange
	}
	if !validation.IsValidURL(req.RegistrationURL) {
		return nil, apperrors.NewBadRequestError("registration URL must be absolute http or https")
	}
	if req.OrganizerEmail != nil && !validation.IsValidEmail(*req.OrganizerEmail) {
		return nil, apperrors.NewBadRequestError("organizer email is invalid")
	}

	city, err := s.cityStore.GetByID(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, apperrors.ErrCityNotFound
	}

	contactEmail := req.OrganizerEmail
	contactPhone := req.OrganizerPhone
	community, err := s.communityResolver.Resolve(ctx, CommunityProfile{
		Name:         req.CommunityName,
		Logo:         req.CommunityLogo,
		CityID:       req.CityID,
		Website:      req.CommunityWebsite,
		SocialLinks:  req.CommunitySocialLinks,
		Size:         req.CommunitySize,
		YearFounded:  req.CommunityYearFounded,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving community: %w", err)
	}

	venueText := validation.NormalizeName(req.Venue)
	var venueID *uuid.UUID
	if req.IsOnline {
		if venueText == "" {
			venueText = onlineVenueLabel
		}
	} else {
		venue, err := s.venueResolver.Resolve(ctx, venueText, req.CityID)
		if err != nil {
			return nil, fmt.Errorf("resolving venue: %w", err)
		}
		venueID = &venue.ID
		venueText = venue.Name
	}

	event := &models.Event{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		BannerURL:       req.BannerURL,
		Date:            req.Date,
		EndDate:         req.EndDate,
		Venue:           venueText,
		VenueID:         venueID,
		IsOnline:        req.IsOnline,
		EventType:       models.EventType(req.EventType),
		CommunityID:     community.ID,
		OrganizerName:   req.OrganizerName,
		OrganizerEmail:  req.OrganizerEmail,
		OrganizerPhone:  req.OrganizerPhone,
		RegistrationURL: req.RegistrationURL,
		CityID:          req.CityID,
		Status:          models.EventPending,
	}

	if err := s.eventStore.Create(ctx, event); err != nil {
		return nil, err
	}

	event.CommunityName = community.Name
	event.CityName = city.Name

	logger.Info().Str("event", event.Title).Str("community", community.Name).
		Str("city", city.Name).Msg("Event submitted for review")

	return event, nil
}

// GetEvents retrieves events with filtering and pagination. Public
// listings are always restricted to approved events; admins pass an
// explicit status filter.
func (s *EventService) GetEvents(ctx context.Context, f repositories.EventFilter, adminView bool) ([]models.Event, int64, error) {
	if !adminView {
		approved := string(models.EventApproved)
		f.Status = &approved
	}

	return s.eventStore.GetAll(ctx, f)
}

// GetEvent retrieves a single event
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	return event, nil
}

// ApproveEvent publishes a pending or rejected event and fires the
// subscriber alert in the background. A failed alert never rolls the
// approval back.
func (s *EventService) ApproveEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	if event.Status == models.EventApproved {
		return apperrors.NewConflictError("event is already approved")
	}

	if err := s.eventStore.UpdateStatus(ctx, id, models.EventApproved); err != nil {
		return err
	}

	go s.notifyApproved(event)

	return nil
}

func (s *EventService) notifyApproved(event *models.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	alert := alerts.EventAlert{
		EventID:   event.ID,
		EventName: event.Title,
		CityID:    event.CityID,
		CityName:  event.CityName,
		EventURL:  fmt.Sprintf("%s/events/%s", s.baseURL, event.ID),
	}

	if err := s.notifier.NotifyEventApproved(ctx, alert); err != nil {
		logger.Error().Err(err).Str("event", event.Title).
			Msg("Subscriber alert failed after approval")
	}
}

// RejectEvent takes a pending or published event off the board
func (s *EventService) RejectEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	if event.Status == models.EventRejected {
		return apperrors.NewConflictError("event is already rejected")
	}

	return s.eventStore.UpdateStatus(ctx, id, models.EventRejected)
}

// UpdateEvent applies an admin edit to a live event
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.BannerURL != nil {
		event.BannerURL = req.BannerURL
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.IsOnline != nil {
		event.IsOnline = *req.IsOnline
	}
	if req.EventType != nil {
		if !models.ValidEventType(models.EventType(*req.EventType)) {
			return nil, apperrors.ErrInvalidEventType
		}
		event.EventType = models.EventType(*req.EventType)
	}
	if req.RegistrationURL != nil {
		if !validation.IsValidURL(*req.RegistrationURL) {
			return nil, apperrors.NewBadRequestError("registration URL must be absolute http or https")
		}
		event.RegistrationURL = *req.RegistrationURL
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}

	if req.Venue != nil {
		venueText := validation.NormalizeName(*req.Venue)
		if event.IsOnline {
			event.Venue = venueText
			event.VenueID = nil
		} else {
			venue, err := s.venueResolver.Resolve(ctx, venueText, event.CityID)
			if err != nil {
				return nil, fmt.Errorf("resolving venue: %w", err)
			}
			event.Venue = venue.Name
			event.VenueID = &venue.ID
		}
	}

	if event.EndDate != nil && event.EndDate.Before(event.Date) {
		return nil, apperrors.ErrInvalidDateRange
	}

	if err := s.eventStore.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// SetFeatured toggles an event's featured flag
func (s *EventService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventStore.SetFeatured(ctx, id, featured)
}

// RegisterClick counts a registration link click. The increment is a
// single statement so concurrent clicks all land.
func (s *EventService) RegisterClick(ctx context.Context, id uuid.UUID) error {
	err := s.eventStore.IncrementRegistrationClicks(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return apperrors.ErrEventNotFound
		}
		return err
	}

	return nil
}

// DeleteEvent removes a live event
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventStore.Delete(ctx, id)
}
