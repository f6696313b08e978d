package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

// mockVenueStore is a hand-rolled venueStore.
type mockVenueStore struct {
	byNameCity map[models.VerificationStatus]*models.Venue
	searchHits []models.Venue
	byID       map[uuid.UUID]*models.Venue
	created    []*models.Venue
	updated    []*models.Venue
	statuses   map[uuid.UUID]models.VerificationStatus
	deleted    []uuid.UUID
	createErr  error
}

func (m *mockVenueStore) GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Venue, int64, error) {
	return nil, 0, nil
}

func (m *mockVenueStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	return m.byID[id], nil
}

func (m *mockVenueStore) GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Venue, error) {
	return m.byNameCity[status], nil
}

func (m *mockVenueStore) SearchByName(ctx context.Context, name string, cityID uuid.UUID) ([]models.Venue, error) {
	return m.searchHits, nil
}

func (m *mockVenueStore) Create(ctx context.Context, v *models.Venue) error {
	if m.createErr != nil {
		return m.createErr
	}
	v.ID = uuid.New()
	m.created = append(m.created, v)
	return nil
}

func (m *mockVenueStore) Update(ctx context.Context, v *models.Venue) error {
	m.updated = append(m.updated, v)
	return nil
}

func (m *mockVenueStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	if m.statuses == nil {
		m.statuses = map[uuid.UUID]models.VerificationStatus{}
	}
	m.statuses[id] = status
	return nil
}

func (m *mockVenueStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestVenueServiceResolve(t *testing.T) {
	ctx := context.Background()
	cityID := uuid.New()

	t.Run("prefers approved exact match", func(t *testing.T) {
		approved := &models.Venue{ID: uuid.New(), Name: "Tech Park Hall", CityID: cityID}
		store := &mockVenueStore{
			byNameCity: map[models.VerificationStatus]*models.Venue{
				models.VerificationApproved: approved,
			},
		}
		svc := NewVenueService(store)

		venue, err := svc.Resolve(ctx, "  Tech Park Hall ", cityID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.ID != approved.ID {
			t.Errorf("expected approved venue, got %s", venue.ID)
		}
		if len(store.created) != 0 {
			t.Errorf("expected no creation, got %d", len(store.created))
		}
	})

	t.Run("substring hit requires exact name equality", func(t *testing.T) {
		exact := models.Venue{ID: uuid.New(), Name: "conference hall"}
		store := &mockVenueStore{
			searchHits: []models.Venue{
				{ID: uuid.New(), Name: "Conference Hall Annex"},
				exact,
			},
		}
		svc := NewVenueService(store)

		venue, err := svc.Resolve(ctx, "Conference Hall", cityID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.ID != exact.ID {
			t.Errorf("expected case-insensitive exact hit, got %q", venue.Name)
		}
	})

	t.Run("reuses pending venue before creating", func(t *testing.T) {
		pending := &models.Venue{ID: uuid.New(), Name: "New Spot", VerificationStatus: models.VerificationPending}
		store := &mockVenueStore{
			byNameCity: map[models.VerificationStatus]*models.Venue{
				models.VerificationPending: pending,
			},
		}
		svc := NewVenueService(store)

		venue, err := svc.Resolve(ctx, "New Spot", cityID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.ID != pending.ID {
			t.Errorf("expected pending venue, got %s", venue.ID)
		}
		if len(store.created) != 0 {
			t.Errorf("expected no creation, got %d", len(store.created))
		}
	})

	t.Run("creates pending venue with placeholder address", func(t *testing.T) {
		store := &mockVenueStore{}
		svc := NewVenueService(store)

		venue, err := svc.Resolve(ctx, "Brand New Venue", cityID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected one created venue, got %d", len(store.created))
		}
		if venue.Address != models.PlaceholderAddress {
			t.Errorf("address = %q, want placeholder", venue.Address)
		}
		if venue.VerificationStatus != models.VerificationPending {
			t.Errorf("status = %s, want pending", venue.VerificationStatus)
		}
	})
}

func TestVenueServiceAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("get venue maps missing row to not found", func(t *testing.T) {
		svc := NewVenueService(&mockVenueStore{})
		if _, err := svc.GetVenue(ctx, uuid.New()); err != apperrors.ErrVenueNotFound {
			t.Errorf("expected ErrVenueNotFound, got %v", err)
		}
	})

	t.Run("admin venues are approved immediately", func(t *testing.T) {
		store := &mockVenueStore{}
		svc := NewVenueService(store)

		venue := &models.Venue{Name: "Admin Hall", Address: "1 Main St"}
		if err := svc.CreateVenue(ctx, venue); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.VerificationStatus != models.VerificationApproved {
			t.Errorf("status = %s, want approved", venue.VerificationStatus)
		}
	})

	t.Run("approve updates status", func(t *testing.T) {
		id := uuid.New()
		store := &mockVenueStore{byID: map[uuid.UUID]*models.Venue{id: {ID: id, Name: "Hall"}}}
		svc := NewVenueService(store)

		if err := svc.ApproveVenue(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.statuses[id] != models.VerificationApproved {
			t.Errorf("status = %s, want approved", store.statuses[id])
		}
	})

	t.Run("delete unknown venue fails", func(t *testing.T) {
		svc := NewVenueService(&mockVenueStore{})
		if err := svc.DeleteVenue(ctx, uuid.New()); err != apperrors.ErrVenueNotFound {
			t.Errorf("expected ErrVenueNotFound, got %v", err)
		}
	})
}
