package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
)

// mockCommunityResolutionStore is a hand-rolled communityResolutionStore.
type mockCommunityResolutionStore struct {
	matches     []models.SimilarityMatch
	findErr     error
	byID        map[uuid.UUID]*models.Community
	byNameCity  map[models.VerificationStatus]*models.Community
	created     []*models.Community
	createErr   error
	findCalls   int
	lookupCalls int
}

func (m *mockCommunityResolutionStore) FindSimilar(ctx context.Context, q models.SimilarityQuery) ([]models.SimilarityMatch, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.matches, nil
}

func (m *mockCommunityResolutionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	return m.byID[id], nil
}

func (m *mockCommunityResolutionStore) GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Community, error) {
	m.lookupCalls++
	return m.byNameCity[status], nil
}

func (m *mockCommunityResolutionStore) Create(ctx context.Context, c *models.Community) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uuid.New()
	m.created = append(m.created, c)
	return nil
}

// mockDuplicateAuditStore records flagged candidates.
type mockDuplicateAuditStore struct {
	candidates []*models.DuplicateCandidate
	createErr  error
}

func (m *mockDuplicateAuditStore) Create(ctx context.Context, d *models.DuplicateCandidate) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.candidates = append(m.candidates, d)
	return nil
}

func TestResolutionServiceResolve(t *testing.T) {
	ctx := context.Background()
	cityID := uuid.New()

	t.Run("reuses existing community at high similarity", func(t *testing.T) {
		existingID := uuid.New()
		store := &mockCommunityResolutionStore{
			matches: []models.SimilarityMatch{
				{ID: existingID, Name: "GopherCon Crew", Score: 95},
			},
			byID: map[uuid.UUID]*models.Community{
				existingID: {ID: existingID, Name: "GopherCon Crew", CityID: cityID},
			},
		}
		audit := &mockDuplicateAuditStore{}
		svc := NewResolutionService(store, audit)

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "gophercon crew", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if community.ID != existingID {
			t.Errorf("expected existing community %s, got %s", existingID, community.ID)
		}
		if len(store.created) != 0 {
			t.Errorf("expected no community creation, got %d", len(store.created))
		}
		if len(audit.candidates) != 0 {
			t.Errorf("expected no duplicate flag, got %d", len(audit.candidates))
		}
	})

	t.Run("creates pending and flags duplicate in ambiguous band", func(t *testing.T) {
		matchID := uuid.New()
		store := &mockCommunityResolutionStore{
			matches: []models.SimilarityMatch{
				{ID: matchID, Name: "Pune Devs", Score: 78, WebsiteMatch: true},
			},
		}
		audit := &mockDuplicateAuditStore{}
		svc := NewResolutionService(store, audit)

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "Pune Developers", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected one created community, got %d", len(store.created))
		}
		if community.VerificationStatus != models.VerificationPending {
			t.Errorf("expected pending status, got %s", community.VerificationStatus)
		}
		if len(audit.candidates) != 1 {
			t.Fatalf("expected one duplicate candidate, got %d", len(audit.candidates))
		}
		candidate := audit.candidates[0]
		if candidate.OriginalCommunityID != matchID {
			t.Errorf("candidate original = %s, want %s", candidate.OriginalCommunityID, matchID)
		}
		if candidate.DuplicateCommunityID != community.ID {
			t.Errorf("candidate duplicate = %s, want %s", candidate.DuplicateCommunityID, community.ID)
		}
		if candidate.SimilarityScore != 78 {
			t.Errorf("candidate score = %d, want 78", candidate.SimilarityScore)
		}
		if candidate.DetectionMethod != "similarity_scorer" {
			t.Errorf("detection method = %q", candidate.DetectionMethod)
		}
		if !candidate.WebsiteMatch {
			t.Error("expected website match to carry over")
		}
		if candidate.AdminStatus != models.DuplicatePending {
			t.Errorf("admin status = %s, want pending", candidate.AdminStatus)
		}
	})

	t.Run("creates without flag below the ambiguous band", func(t *testing.T) {
		store := &mockCommunityResolutionStore{
			matches: []models.SimilarityMatch{
				{ID: uuid.New(), Name: "Something Else", Score: 40},
			},
		}
		audit := &mockDuplicateAuditStore{}
		svc := NewResolutionService(store, audit)

		if _, err := svc.Resolve(ctx, CommunityProfile{Name: "Fresh Community", CityID: cityID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.created) != 1 {
			t.Errorf("expected one created community, got %d", len(store.created))
		}
		if len(audit.candidates) != 0 {
			t.Errorf("expected no duplicate flag, got %d", len(audit.candidates))
		}
	})

	t.Run("creates when scorer returns no matches", func(t *testing.T) {
		store := &mockCommunityResolutionStore{}
		svc := NewResolutionService(store, &mockDuplicateAuditStore{})

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "First In Town", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if community.Name != "First In Town" {
			t.Errorf("community name = %q", community.Name)
		}
	})

	t.Run("falls back to exact approved name when scorer fails", func(t *testing.T) {
		approved := &models.Community{ID: uuid.New(), Name: "Bengaluru JS", CityID: cityID, VerificationStatus: models.VerificationApproved}
		store := &mockCommunityResolutionStore{
			findErr: errors.New("function find_similar_communities_comprehensive does not exist"),
			byNameCity: map[models.VerificationStatus]*models.Community{
				models.VerificationApproved: approved,
			},
		}
		svc := NewResolutionService(store, &mockDuplicateAuditStore{})

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "Bengaluru JS", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if community.ID != approved.ID {
			t.Errorf("expected approved community, got %s", community.ID)
		}
		if len(store.created) != 0 {
			t.Errorf("expected no creation on exact match, got %d", len(store.created))
		}
	})

	t.Run("fallback prefers pending exact match over creating", func(t *testing.T) {
		pending := &models.Community{ID: uuid.New(), Name: "Delhi Rust", CityID: cityID, VerificationStatus: models.VerificationPending}
		store := &mockCommunityResolutionStore{
			findErr: errors.New("scorer down"),
			byNameCity: map[models.VerificationStatus]*models.Community{
				models.VerificationPending: pending,
			},
		}
		svc := NewResolutionService(store, &mockDuplicateAuditStore{})

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "Delhi Rust", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if community.ID != pending.ID {
			t.Errorf("expected pending community, got %s", community.ID)
		}
	})

	t.Run("fallback creates when no exact match exists", func(t *testing.T) {
		store := &mockCommunityResolutionStore{findErr: errors.New("scorer down")}
		svc := NewResolutionService(store, &mockDuplicateAuditStore{})

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "Nobody Yet", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if community.VerificationStatus != models.VerificationPending {
			t.Errorf("expected pending status, got %s", community.VerificationStatus)
		}
	})

	t.Run("audit failure does not fail the submission", func(t *testing.T) {
		store := &mockCommunityResolutionStore{
			matches: []models.SimilarityMatch{
				{ID: uuid.New(), Name: "Flaky Audit", Score: 75},
			},
		}
		audit := &mockDuplicateAuditStore{createErr: errors.New("insert failed")}
		svc := NewResolutionService(store, audit)

		if _, err := svc.Resolve(ctx, CommunityProfile{Name: "Flaky Audit Dup", CityID: cityID}); err != nil {
			t.Fatalf("expected submission to survive audit failure, got %v", err)
		}
	})

	t.Run("vanished high match falls through to create", func(t *testing.T) {
		store := &mockCommunityResolutionStore{
			matches: []models.SimilarityMatch{
				{ID: uuid.New(), Name: "Gone Already", Score: 93},
			},
			byID: map[uuid.UUID]*models.Community{},
		}
		svc := NewResolutionService(store, &mockDuplicateAuditStore{})

		community, err := svc.Resolve(ctx, CommunityProfile{Name: "Gone Already", CityID: cityID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected creation after vanished match, got %d", len(store.created))
		}
		if community.ID != store.created[0].ID {
			t.Errorf("expected the created community to be returned")
		}
	})
}
