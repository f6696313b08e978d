package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/app/services"
)

// stubSubscriptionStore records deactivations and satisfies the
// subscription service's store dependency.
type stubSubscriptionStore struct {
	deactivated    []string
	allDeactivated []string
}

func (s *stubSubscriptionStore) Upsert(ctx context.Context, email string, cityID uuid.UUID) error {
	return nil
}

func (s *stubSubscriptionStore) Deactivate(ctx context.Context, email string, cityID uuid.UUID) error {
	s.deactivated = append(s.deactivated, email)
	return nil
}

func (s *stubSubscriptionStore) DeactivateAllForEmail(ctx context.Context, email string) (int64, error) {
	s.allDeactivated = append(s.allDeactivated, email)
	return 1, nil
}

func (s *stubSubscriptionStore) GetAll(ctx context.Context, cityID *uuid.UUID, isActive *bool, search *string, page, pageSize int) ([]models.Subscription, int64, error) {
	return nil, 0, nil
}

func (s *stubSubscriptionStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func (s *stubSubscriptionStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubSubscriptionStore) CountActive(ctx context.Context) (int, error)       { return 0, nil }
func (s *stubSubscriptionStore) CountInactive(ctx context.Context) (int, error)     { return 0, nil }
func (s *stubSubscriptionStore) CountUniqueEmails(ctx context.Context) (int, error) { return 0, nil }

func (s *stubSubscriptionStore) CountActiveByCity(ctx context.Context) ([]repositories.CitySubscriptionTally, error) {
	return nil, nil
}

type stubCityStore struct {
	cities map[uuid.UUID]*models.City
}

func (s *stubCityStore) GetByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	return s.cities[id], nil
}

func newSubscriptionTestRouter(store *stubSubscriptionStore, cities *stubCityStore, webhookSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewSubscriptionService(store, cities)
	ctrl := NewSubscriptionController(svc, webhookSecret)

	router := gin.New()
	router.GET("/unsubscribe", ctrl.Unsubscribe)
	router.POST("/webhooks/email", ctrl.HandleEmailWebhook)
	return router
}

func TestSubscriptionControllerUnsubscribe(t *testing.T) {
	cityID := uuid.New()
	cities := &stubCityStore{cities: map[uuid.UUID]*models.City{
		cityID: {ID: cityID, Name: "Bengaluru"},
	}}

	t.Run("deactivates by email and city ID", func(t *testing.T) {
		store := &stubSubscriptionStore{}
		router := newSubscriptionTestRouter(store, cities, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=dev@example.com&city="+cityID.String(), nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(store.deactivated) != 1 || store.deactivated[0] != "dev@example.com" {
			t.Errorf("deactivations = %v", store.deactivated)
		}
	})

	t.Run("rejects a non-UUID city parameter", func(t *testing.T) {
		store := &stubSubscriptionStore{}
		router := newSubscriptionTestRouter(store, cities, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=dev@example.com&city=Bengaluru", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if len(store.deactivated) != 0 {
			t.Errorf("deactivations = %v, want none", store.deactivated)
		}
	})

	t.Run("unknown city is not found", func(t *testing.T) {
		router := newSubscriptionTestRouter(&stubSubscriptionStore{}, cities, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=dev@example.com&city="+uuid.NewString(), nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("missing parameters are rejected", func(t *testing.T) {
		router := newSubscriptionTestRouter(&stubSubscriptionStore{}, cities, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=dev@example.com", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSubscriptionControllerEmailWebhook(t *testing.T) {
	cities := &stubCityStore{}
	payload := `{"event":"bounced","email":"dev@example.com"}`

	t.Run("accepts a request carrying the shared secret", func(t *testing.T) {
		store := &stubSubscriptionStore{}
		router := newSubscriptionTestRouter(store, cities, "topsecret")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/email", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Webhook-Secret", "topsecret")
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(store.allDeactivated) != 1 {
			t.Errorf("bounce did not deactivate the address")
		}
	})

	t.Run("rejects a wrong or missing secret", func(t *testing.T) {
		for _, secret := range []string{"", "guess"} {
			store := &stubSubscriptionStore{}
			router := newSubscriptionTestRouter(store, cities, "topsecret")

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/webhooks/email", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			if secret != "" {
				req.Header.Set("X-Webhook-Secret", secret)
			}
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("secret %q: status = %d, want 401", secret, rec.Code)
			}
			if len(store.allDeactivated) != 0 {
				t.Errorf("secret %q: payload must not be processed", secret)
			}
		}
	})

	t.Run("skips verification when no secret is configured", func(t *testing.T) {
		store := &stubSubscriptionStore{}
		router := newSubscriptionTestRouter(store, cities, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/email", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(store.allDeactivated) != 1 {
			t.Errorf("bounce did not deactivate the address")
		}
	})
}
