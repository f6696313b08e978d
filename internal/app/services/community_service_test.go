package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

type transferCall struct {
	from uuid.UUID
	to   uuid.UUID
}

type resolveCall struct {
	id         uuid.UUID
	status     models.DuplicateStatus
	notes      string
	reviewedBy string
}

// mockCommunityAdminStore is a hand-rolled communityAdminStore.
type mockCommunityAdminStore struct {
	byID       map[uuid.UUID]*models.Community
	liveEvents map[uuid.UUID]int
	moved      int64
	transfers  []transferCall
	deleted    []uuid.UUID
	statuses   map[uuid.UUID]models.VerificationStatus
	updated    []*models.Community
}

func (m *mockCommunityAdminStore) GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Community, int64, error) {
	return nil, 0, nil
}

func (m *mockCommunityAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	return m.byID[id], nil
}

func (m *mockCommunityAdminStore) Update(ctx context.Context, c *models.Community) error {
	m.updated = append(m.updated, c)
	return nil
}

func (m *mockCommunityAdminStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	if m.statuses == nil {
		m.statuses = map[uuid.UUID]models.VerificationStatus{}
	}
	m.statuses[id] = status
	return nil
}

func (m *mockCommunityAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCommunityAdminStore) CountLiveEvents(ctx context.Context, id uuid.UUID) (int, error) {
	return m.liveEvents[id], nil
}

func (m *mockCommunityAdminStore) TransferEvents(ctx context.Context, fromID, toID uuid.UUID) (int64, error) {
	m.transfers = append(m.transfers, transferCall{fromID, toID})
	return m.moved, nil
}

// mockDuplicateReviewStore is a hand-rolled duplicateReviewStore.
type mockDuplicateReviewStore struct {
	byID       map[uuid.UUID]*models.DuplicateCandidate
	resolves   []resolveCall
	resolveOK  bool
	resolveErr error
}

func (m *mockDuplicateReviewStore) GetAll(ctx context.Context, status *string, page, pageSize int) ([]models.DuplicateCandidate, int64, error) {
	return nil, 0, nil
}

func (m *mockDuplicateReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*models.DuplicateCandidate, error) {
	return m.byID[id], nil
}

func (m *mockDuplicateReviewStore) Resolve(ctx context.Context, id uuid.UUID, status models.DuplicateStatus, notes, reviewedBy string, reviewedAt time.Time) (bool, error) {
	if m.resolveErr != nil {
		return false, m.resolveErr
	}
	m.resolves = append(m.resolves, resolveCall{id, status, notes, reviewedBy})
	return m.resolveOK, nil
}

func TestCommunityServiceAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown community maps to not found", func(t *testing.T) {
		svc := NewCommunityService(&mockCommunityAdminStore{}, &mockDuplicateReviewStore{})
		if _, err := svc.GetCommunity(ctx, uuid.New()); !errors.Is(err, apperrors.ErrCommunityNotFound) {
			t.Errorf("expected ErrCommunityNotFound, got %v", err)
		}
	})

	t.Run("delete blocked while live events remain", func(t *testing.T) {
		id := uuid.New()
		store := &mockCommunityAdminStore{
			byID:       map[uuid.UUID]*models.Community{id: {ID: id, Name: "Busy"}},
			liveEvents: map[uuid.UUID]int{id: 3},
		}
		svc := NewCommunityService(store, &mockDuplicateReviewStore{})

		if err := svc.DeleteCommunity(ctx, id); !errors.Is(err, apperrors.ErrCommunityHasEvents) {
			t.Errorf("expected ErrCommunityHasEvents, got %v", err)
		}
		if len(store.deleted) != 0 {
			t.Errorf("community must not be deleted")
		}
	})

	t.Run("delete succeeds without live events", func(t *testing.T) {
		id := uuid.New()
		store := &mockCommunityAdminStore{
			byID: map[uuid.UUID]*models.Community{id: {ID: id, Name: "Quiet"}},
		}
		svc := NewCommunityService(store, &mockDuplicateReviewStore{})

		if err := svc.DeleteCommunity(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deleted) != 1 {
			t.Errorf("community was not deleted")
		}
	})

	t.Run("transfer to itself is rejected", func(t *testing.T) {
		id := uuid.New()
		svc := NewCommunityService(&mockCommunityAdminStore{}, &mockDuplicateReviewStore{})

		if _, err := svc.TransferEvents(ctx, id, id); !errors.Is(err, apperrors.ErrTransferSameCommunity) {
			t.Errorf("expected ErrTransferSameCommunity, got %v", err)
		}
	})

	t.Run("transfer requires both communities to exist", func(t *testing.T) {
		from := uuid.New()
		store := &mockCommunityAdminStore{
			byID: map[uuid.UUID]*models.Community{from: {ID: from}},
		}
		svc := NewCommunityService(store, &mockDuplicateReviewStore{})

		if _, err := svc.TransferEvents(ctx, from, uuid.New()); !errors.Is(err, apperrors.ErrCommunityNotFound) {
			t.Errorf("expected ErrCommunityNotFound, got %v", err)
		}
	})
}

func TestCommunityServiceDuplicateReview(t *testing.T) {
	ctx := context.Background()

	pendingCandidate := func() (*models.DuplicateCandidate, uuid.UUID, uuid.UUID) {
		originalID := uuid.New()
		duplicateID := uuid.New()
		return &models.DuplicateCandidate{
			ID:                    uuid.New(),
			OriginalCommunityID:   originalID,
			OriginalCommunityName: "Go Bengaluru",
			DuplicateCommunityID:  duplicateID,
			AdminStatus:           models.DuplicatePending,
		}, originalID, duplicateID
	}

	t.Run("merge moves events, deletes duplicate and records verdict", func(t *testing.T) {
		candidate, originalID, duplicateID := pendingCandidate()
		store := &mockCommunityAdminStore{moved: 4}
		duplicates := &mockDuplicateReviewStore{
			byID:      map[uuid.UUID]*models.DuplicateCandidate{candidate.ID: candidate},
			resolveOK: true,
		}
		svc := NewCommunityService(store, duplicates)

		if err := svc.MergeDuplicate(ctx, candidate.ID, "same organizers", "admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.transfers) != 1 || store.transfers[0].from != duplicateID || store.transfers[0].to != originalID {
			t.Errorf("transfer = %+v", store.transfers)
		}
		if len(store.deleted) != 1 || store.deleted[0] != duplicateID {
			t.Errorf("duplicate community was not deleted")
		}
		if len(duplicates.resolves) != 1 {
			t.Fatalf("expected one resolve call")
		}
		verdict := duplicates.resolves[0]
		if verdict.status != models.DuplicateMergeApproved {
			t.Errorf("status = %s", verdict.status)
		}
		if !strings.Contains(verdict.notes, "Merged into Go Bengaluru, 4 events moved.") {
			t.Errorf("verdict = %q", verdict.notes)
		}
		if !strings.Contains(verdict.notes, "same organizers") {
			t.Errorf("admin notes missing from verdict: %q", verdict.notes)
		}
		if verdict.reviewedBy != "admin" {
			t.Errorf("reviewedBy = %q", verdict.reviewedBy)
		}
	})

	t.Run("keep separate records verdict without touching communities", func(t *testing.T) {
		candidate, _, _ := pendingCandidate()
		store := &mockCommunityAdminStore{}
		duplicates := &mockDuplicateReviewStore{
			byID:      map[uuid.UUID]*models.DuplicateCandidate{candidate.ID: candidate},
			resolveOK: true,
		}
		svc := NewCommunityService(store, duplicates)

		if err := svc.KeepSeparate(ctx, candidate.ID, "different cities", "admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.transfers) != 0 || len(store.deleted) != 0 {
			t.Errorf("keep separate must not touch communities")
		}
		if duplicates.resolves[0].status != models.DuplicateKeepSeparate {
			t.Errorf("status = %s", duplicates.resolves[0].status)
		}
	})

	t.Run("investigation parks the candidate", func(t *testing.T) {
		candidate, _, _ := pendingCandidate()
		duplicates := &mockDuplicateReviewStore{
			byID:      map[uuid.UUID]*models.DuplicateCandidate{candidate.ID: candidate},
			resolveOK: true,
		}
		svc := NewCommunityService(&mockCommunityAdminStore{}, duplicates)

		if err := svc.MarkForInvestigation(ctx, candidate.ID, "", "admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if duplicates.resolves[0].status != models.DuplicateInvestigating {
			t.Errorf("status = %s", duplicates.resolves[0].status)
		}
	})

	t.Run("already resolved candidate is refused", func(t *testing.T) {
		candidate, _, _ := pendingCandidate()
		candidate.AdminStatus = models.DuplicateKeepSeparate
		duplicates := &mockDuplicateReviewStore{
			byID: map[uuid.UUID]*models.DuplicateCandidate{candidate.ID: candidate},
		}
		svc := NewCommunityService(&mockCommunityAdminStore{}, duplicates)

		if err := svc.KeepSeparate(ctx, candidate.ID, "", "admin"); !errors.Is(err, apperrors.ErrDuplicateAlreadyResolved) {
			t.Errorf("expected ErrDuplicateAlreadyResolved, got %v", err)
		}
	})

	t.Run("unknown candidate maps to not found", func(t *testing.T) {
		svc := NewCommunityService(&mockCommunityAdminStore{}, &mockDuplicateReviewStore{})
		if err := svc.KeepSeparate(ctx, uuid.New(), "", "admin"); !errors.Is(err, apperrors.ErrDuplicateNotFound) {
			t.Errorf("expected ErrDuplicateNotFound, got %v", err)
		}
	})

	t.Run("lost resolve race maps to already resolved", func(t *testing.T) {
		candidate, _, _ := pendingCandidate()
		duplicates := &mockDuplicateReviewStore{
			byID:      map[uuid.UUID]*models.DuplicateCandidate{candidate.ID: candidate},
			resolveOK: false,
		}
		svc := NewCommunityService(&mockCommunityAdminStore{}, duplicates)

		if err := svc.KeepSeparate(ctx, candidate.ID, "", "admin"); !errors.Is(err, apperrors.ErrDuplicateAlreadyResolved) {
			t.Errorf("expected ErrDuplicateAlreadyResolved, got %v", err)
		}
	})
}
