package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

type upsertCall struct {
	email  string
	cityID uuid.UUID
}

// mockSubscriptionStore is a hand-rolled subscriptionStore.
type mockSubscriptionStore struct {
	upserts        []upsertCall
	deactivated    []upsertCall
	allDeactivated []string
	known          map[uuid.UUID]bool
	setActive      []uuid.UUID
	deleted        []uuid.UUID
}

func (m *mockSubscriptionStore) Upsert(ctx context.Context, email string, cityID uuid.UUID) error {
	m.upserts = append(m.upserts, upsertCall{email, cityID})
	return nil
}

func (m *mockSubscriptionStore) Deactivate(ctx context.Context, email string, cityID uuid.UUID) error {
	m.deactivated = append(m.deactivated, upsertCall{email, cityID})
	return nil
}

func (m *mockSubscriptionStore) DeactivateAllForEmail(ctx context.Context, email string) (int64, error) {
	m.allDeactivated = append(m.allDeactivated, email)
	return 2, nil
}

func (m *mockSubscriptionStore) GetAll(ctx context.Context, cityID *uuid.UUID, isActive *bool, search *string, page, pageSize int) ([]models.Subscription, int64, error) {
	return nil, 0, nil
}

func (m *mockSubscriptionStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if !m.known[id] {
		return pgx.ErrNoRows
	}
	m.setActive = append(m.setActive, id)
	return nil
}

func (m *mockSubscriptionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if !m.known[id] {
		return pgx.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSubscriptionStore) CountActive(ctx context.Context) (int, error)   { return 5, nil }
func (m *mockSubscriptionStore) CountInactive(ctx context.Context) (int, error) { return 2, nil }

func (m *mockSubscriptionStore) CountUniqueEmails(ctx context.Context) (int, error) { return 4, nil }

func (m *mockSubscriptionStore) CountActiveByCity(ctx context.Context) ([]repositories.CitySubscriptionTally, error) {
	return []repositories.CitySubscriptionTally{
		{CityID: uuid.New(), CityName: "Bengaluru", Count: 3},
	}, nil
}

type mockSubscriptionCityStore struct {
	byID map[uuid.UUID]*models.City
}

func (m *mockSubscriptionCityStore) GetByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	return m.byID[id], nil
}

func TestSubscriptionServiceSubscribe(t *testing.T) {
	ctx := context.Background()
	cityA := uuid.New()
	cityB := uuid.New()

	cities := &mockSubscriptionCityStore{byID: map[uuid.UUID]*models.City{
		cityA: {ID: cityA, Name: "Bengaluru"},
		cityB: {ID: cityB, Name: "Pune"},
	}}

	t.Run("subscribes each requested city with normalized email", func(t *testing.T) {
		store := &mockSubscriptionStore{}
		svc := NewSubscriptionService(store, cities)

		subscribed, err := svc.Subscribe(ctx, "  Dev@Example.COM ", []uuid.UUID{cityA, cityB})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if subscribed != 2 {
			t.Errorf("subscribed = %d, want 2", subscribed)
		}
		if len(store.upserts) != 2 {
			t.Fatalf("upserts = %d, want 2", len(store.upserts))
		}
		if store.upserts[0].email != "dev@example.com" {
			t.Errorf("email not normalized: %q", store.upserts[0].email)
		}
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, cities)
		if _, err := svc.Subscribe(ctx, "not-an-email", []uuid.UUID{cityA}); !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("expected bad request, got %v", err)
		}
	})

	t.Run("rejects empty city list", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, cities)
		if _, err := svc.Subscribe(ctx, "dev@example.com", nil); !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("expected bad request, got %v", err)
		}
	})

	t.Run("unknown city aborts with not found", func(t *testing.T) {
		store := &mockSubscriptionStore{}
		svc := NewSubscriptionService(store, cities)
		if _, err := svc.Subscribe(ctx, "dev@example.com", []uuid.UUID{uuid.New()}); !errors.Is(err, apperrors.ErrCityNotFound) {
			t.Errorf("expected ErrCityNotFound, got %v", err)
		}
	})
}

func TestSubscriptionServiceUnsubscribe(t *testing.T) {
	ctx := context.Background()
	cityID := uuid.New()
	cities := &mockSubscriptionCityStore{byID: map[uuid.UUID]*models.City{
		cityID: {ID: cityID, Name: "Bengaluru"},
	}}

	t.Run("deactivates by city ID", func(t *testing.T) {
		store := &mockSubscriptionStore{}
		svc := NewSubscriptionService(store, cities)

		if err := svc.Unsubscribe(ctx, "Dev@Example.com", cityID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deactivated) != 1 {
			t.Fatalf("deactivated = %d, want 1", len(store.deactivated))
		}
		if store.deactivated[0].email != "dev@example.com" || store.deactivated[0].cityID != cityID {
			t.Errorf("deactivation call = %+v", store.deactivated[0])
		}
	})

	t.Run("never subscribed address is not an error", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, cities)
		if err := svc.Unsubscribe(ctx, "stranger@example.com", cityID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown city is rejected", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, cities)
		if err := svc.Unsubscribe(ctx, "dev@example.com", uuid.New()); !errors.Is(err, apperrors.ErrCityNotFound) {
			t.Errorf("expected ErrCityNotFound, got %v", err)
		}
	})
}

func TestSubscriptionServiceEmailEvents(t *testing.T) {
	ctx := context.Background()
	cities := &mockSubscriptionCityStore{}

	t.Run("deactivating events kill all subscriptions for the address", func(t *testing.T) {
		for _, event := range []string{"unsubscribed", "spam", "bounced", "hard_bounce", "blocked", " Spam "} {
			store := &mockSubscriptionStore{}
			svc := NewSubscriptionService(store, cities)

			if err := svc.HandleEmailEvent(ctx, event, "dev@example.com"); err != nil {
				t.Fatalf("event %q: unexpected error: %v", event, err)
			}
			if len(store.allDeactivated) != 1 {
				t.Errorf("event %q did not deactivate", event)
			}
		}
	})

	t.Run("other events are acknowledged and dropped", func(t *testing.T) {
		store := &mockSubscriptionStore{}
		svc := NewSubscriptionService(store, cities)

		if err := svc.HandleEmailEvent(ctx, "delivered", "dev@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.allDeactivated) != 0 {
			t.Errorf("delivery event must not deactivate")
		}
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, cities)
		if err := svc.HandleEmailEvent(ctx, "spam", "  "); !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("expected bad request, got %v", err)
		}
	})
}

func TestSubscriptionServiceStats(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionStore{}, &mockSubscriptionCityStore{})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalActive != 5 || stats.TotalInactive != 2 {
		t.Errorf("totals = %d/%d", stats.TotalActive, stats.TotalInactive)
	}
	if stats.UniqueEmails != 4 {
		t.Errorf("UniqueEmails = %d, want 4", stats.UniqueEmails)
	}
	if len(stats.ByCity) != 1 || stats.ByCity[0].CityName != "Bengaluru" {
		t.Errorf("by-city breakdown = %+v", stats.ByCity)
	}
}

func TestSubscriptionServiceAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles a known subscription", func(t *testing.T) {
		id := uuid.New()
		store := &mockSubscriptionStore{known: map[uuid.UUID]bool{id: true}}
		svc := NewSubscriptionService(store, &mockSubscriptionCityStore{})

		if err := svc.SetSubscriptionActive(ctx, id, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.setActive) != 1 || store.setActive[0] != id {
			t.Errorf("setActive calls = %v", store.setActive)
		}
	})

	t.Run("toggling an unknown subscription is not found", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, &mockSubscriptionCityStore{})

		err := svc.SetSubscriptionActive(ctx, uuid.New(), true)
		if !errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("deletes a known subscription", func(t *testing.T) {
		id := uuid.New()
		store := &mockSubscriptionStore{known: map[uuid.UUID]bool{id: true}}
		svc := NewSubscriptionService(store, &mockSubscriptionCityStore{})

		if err := svc.DeleteSubscription(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deleted) != 1 || store.deleted[0] != id {
			t.Errorf("deleted = %v", store.deleted)
		}
	})

	t.Run("deleting an unknown subscription is not found", func(t *testing.T) {
		svc := NewSubscriptionService(&mockSubscriptionStore{}, &mockSubscriptionCityStore{})

		err := svc.DeleteSubscription(ctx, uuid.New())
		if !errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
