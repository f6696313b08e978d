package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

type mockCityStore struct {
	cities       map[uuid.UUID]*models.City
	createErr    error
	updateErr    error
	hasRelations bool
	deleted      []uuid.UUID
}

func (m *mockCityStore) GetAll(ctx context.Context) ([]models.City, error) {
	out := make([]models.City, 0, len(m.cities))
	for _, c := range m.cities {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCityStore) GetByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	c, ok := m.cities[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *mockCityStore) Create(ctx context.Context, city *models.City) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.cities == nil {
		m.cities = make(map[uuid.UUID]*models.City)
	}
	city.ID = uuid.New()
	m.cities[city.ID] = city
	return nil
}

func (m *mockCityStore) Update(ctx context.Context, city *models.City) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.cities[city.ID] = city
	return nil
}

func (m *mockCityStore) HasRelations(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.hasRelations, nil
}

func (m *mockCityStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	delete(m.cities, id)
	return nil
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "cities_name_key"}
}

func TestCityService(t *testing.T) {
	ctx := context.Background()

	t.Run("GetCity returns not found for unknown id", func(t *testing.T) {
		svc := NewCityService(&mockCityStore{})

		_, err := svc.GetCity(ctx, uuid.New())
		if !errors.Is(err, apperrors.ErrCityNotFound) {
			t.Fatalf("GetCity() error = %v, want ErrCityNotFound", err)
		}
	})

	t.Run("CreateCity normalizes names", func(t *testing.T) {
		store := &mockCityStore{}
		svc := NewCityService(store)

		city := &models.City{Name: "  Bengaluru ", State: " Karnataka  "}
		if err := svc.CreateCity(ctx, city); err != nil {
			t.Fatalf("CreateCity() error = %v", err)
		}
		if city.Name != "Bengaluru" || city.State != "Karnataka" {
			t.Errorf("city = %q/%q, want normalized names", city.Name, city.State)
		}
	})

	t.Run("CreateCity maps unique violation to conflict", func(t *testing.T) {
		svc := NewCityService(&mockCityStore{createErr: uniqueViolation()})

		err := svc.CreateCity(ctx, &models.City{Name: "Pune", State: "Maharashtra"})
		if !errors.Is(err, apperrors.ErrCityAlreadyExists) {
			t.Fatalf("CreateCity() error = %v, want ErrCityAlreadyExists", err)
		}
	})

	t.Run("UpdateCity renames an existing city", func(t *testing.T) {
		id := uuid.New()
		store := &mockCityStore{cities: map[uuid.UUID]*models.City{
			id: {ID: id, Name: "Gurgaon", State: "Haryana"},
		}}
		svc := NewCityService(store)

		updated, err := svc.UpdateCity(ctx, id, "Gurugram", "Haryana")
		if err != nil {
			t.Fatalf("UpdateCity() error = %v", err)
		}
		if updated.Name != "Gurugram" {
			t.Errorf("Name = %q, want Gurugram", updated.Name)
		}
		if store.cities[id].Name != "Gurugram" {
			t.Error("expected the store to be updated")
		}
	})

	t.Run("UpdateCity maps unique violation to conflict", func(t *testing.T) {
		id := uuid.New()
		store := &mockCityStore{
			cities:    map[uuid.UUID]*models.City{id: {ID: id, Name: "Delhi", State: "Delhi"}},
			updateErr: uniqueViolation(),
		}
		svc := NewCityService(store)

		_, err := svc.UpdateCity(ctx, id, "Mumbai", "Maharashtra")
		if !errors.Is(err, apperrors.ErrCityAlreadyExists) {
			t.Fatalf("UpdateCity() error = %v, want ErrCityAlreadyExists", err)
		}
	})

	t.Run("DeleteCity refuses a city with relations", func(t *testing.T) {
		id := uuid.New()
		store := &mockCityStore{
			cities:       map[uuid.UUID]*models.City{id: {ID: id, Name: "Chennai", State: "Tamil Nadu"}},
			hasRelations: true,
		}
		svc := NewCityService(store)

		err := svc.DeleteCity(ctx, id)
		if !errors.Is(err, apperrors.ErrCityHasRelations) {
			t.Fatalf("DeleteCity() error = %v, want ErrCityHasRelations", err)
		}
		if len(store.deleted) != 0 {
			t.Error("expected no deletion")
		}
	})

	t.Run("DeleteCity removes an unattached city", func(t *testing.T) {
		id := uuid.New()
		store := &mockCityStore{
			cities: map[uuid.UUID]*models.City{id: {ID: id, Name: "Kochi", State: "Kerala"}},
		}
		svc := NewCityService(store)

		if err := svc.DeleteCity(ctx, id); err != nil {
			t.Fatalf("DeleteCity() error = %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != id {
			t.Errorf("deleted = %v, want [%s]", store.deleted, id)
		}
	})
}
