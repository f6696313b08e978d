package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
)

// mockExpiredEventStore is a hand-rolled expiredEventStore.
type mockExpiredEventStore struct {
	expired   []models.Event
	listErr   error
	byID      map[uuid.UUID]*models.Event
	deleted   []uuid.UUID
	deleteErr map[uuid.UUID]error
}

func (m *mockExpiredEventStore) ListExpiredApproved(ctx context.Context, now time.Time) ([]models.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.expired, nil
}

func (m *mockExpiredEventStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return m.byID[id], nil
}

func (m *mockExpiredEventStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockArchivedEventStore is a hand-rolled archivedEventStore.
type mockArchivedEventStore struct {
	inserted  []*models.ArchivedEvent
	existing  map[uuid.UUID]bool
	insertErr map[uuid.UUID]error
	byID      map[uuid.UUID]*models.ArchivedEvent
}

func (m *mockArchivedEventStore) Insert(ctx context.Context, e *models.ArchivedEvent) (bool, error) {
	if err := m.insertErr[e.ID]; err != nil {
		return false, err
	}
	if m.existing[e.ID] {
		return false, nil
	}
	m.inserted = append(m.inserted, e)
	return true, nil
}

func (m *mockArchivedEventStore) GetAll(ctx context.Context, f repositories.ArchivedEventFilter) ([]models.ArchivedEvent, int64, error) {
	return nil, 0, nil
}

func (m *mockArchivedEventStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ArchivedEvent, error) {
	return m.byID[id], nil
}

func (m *mockArchivedEventStore) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return nil
}

type mockCounterStore struct {
	bumped []uuid.UUID
	err    error
}

func (m *mockCounterStore) IncrementEventCount(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.bumped = append(m.bumped, id)
	return nil
}

type mockSweepLogStore struct {
	logs []*models.SweepLog
}

func (m *mockSweepLogStore) Create(ctx context.Context, log *models.SweepLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockSweepLogStore) GetRecent(ctx context.Context, limit int) ([]models.SweepLog, error) {
	return nil, nil
}

func expiredEvent(venueID *uuid.UUID) models.Event {
	past := time.Now().Add(-24 * time.Hour)
	return models.Event{
		ID:            uuid.New(),
		Title:         "Finished Meetup",
		Date:          past,
		Venue:         "Tech Park Hall",
		VenueID:       venueID,
		EventType:     models.EventTypeMeetup,
		CommunityID:   uuid.New(),
		CommunityName: "Go Bengaluru",
		CityID:        uuid.New(),
		Status:        models.EventApproved,
	}
}

func TestArchiveServiceSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("archives expired events and bumps counters", func(t *testing.T) {
		venueID := uuid.New()
		event := expiredEvent(&venueID)
		events := &mockExpiredEventStore{expired: []models.Event{event}}
		archive := &mockArchivedEventStore{}
		communities := &mockCounterStore{}
		venues := &mockCounterStore{}
		logs := &mockSweepLogStore{}
		svc := NewArchiveService(events, archive, communities, venues, logs)

		result, err := svc.Sweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Scanned != 1 || result.Archived != 1 || result.Skipped != 0 || result.Failed != 0 {
			t.Errorf("result = %+v", result)
		}
		if len(archive.inserted) != 1 {
			t.Fatalf("expected one snapshot, got %d", len(archive.inserted))
		}
		if archive.inserted[0].ID != event.ID {
			t.Errorf("snapshot id mismatch")
		}
		if len(communities.bumped) != 1 || communities.bumped[0] != event.CommunityID {
			t.Errorf("community counter not bumped")
		}
		if len(venues.bumped) != 1 || venues.bumped[0] != venueID {
			t.Errorf("venue counter not bumped")
		}
		if len(events.deleted) != 1 || events.deleted[0] != event.ID {
			t.Errorf("live row not deleted")
		}
		if len(logs.logs) != 1 {
			t.Fatalf("expected one sweep log, got %d", len(logs.logs))
		}
		if logs.logs[0].Result["archived"] != 1 {
			t.Errorf("sweep log result = %v", logs.logs[0].Result)
		}
	})

	t.Run("replay skips counters but still deletes live row", func(t *testing.T) {
		event := expiredEvent(nil)
		events := &mockExpiredEventStore{expired: []models.Event{event}}
		archive := &mockArchivedEventStore{existing: map[uuid.UUID]bool{event.ID: true}}
		communities := &mockCounterStore{}
		svc := NewArchiveService(events, archive, communities, &mockCounterStore{}, &mockSweepLogStore{})

		result, err := svc.Sweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Skipped != 1 || result.Archived != 0 {
			t.Errorf("result = %+v", result)
		}
		if len(communities.bumped) != 0 {
			t.Errorf("counters must not be bumped on replay")
		}
		if len(events.deleted) != 1 {
			t.Errorf("live row must still be deleted on replay")
		}
	})

	t.Run("one failure does not abort the run", func(t *testing.T) {
		broken := expiredEvent(nil)
		healthy := expiredEvent(nil)
		events := &mockExpiredEventStore{expired: []models.Event{broken, healthy}}
		archive := &mockArchivedEventStore{
			insertErr: map[uuid.UUID]error{broken.ID: errors.New("insert failed")},
		}
		svc := NewArchiveService(events, archive, &mockCounterStore{}, &mockCounterStore{}, &mockSweepLogStore{})

		result, err := svc.Sweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Failed != 1 || result.Archived != 1 {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("counter failure does not fail the archive", func(t *testing.T) {
		event := expiredEvent(nil)
		events := &mockExpiredEventStore{expired: []models.Event{event}}
		communities := &mockCounterStore{err: errors.New("update failed")}
		svc := NewArchiveService(events, &mockArchivedEventStore{}, communities, &mockCounterStore{}, &mockSweepLogStore{})

		result, err := svc.Sweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Archived != 1 {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("list failure is recorded in the sweep log", func(t *testing.T) {
		events := &mockExpiredEventStore{listErr: errors.New("db down")}
		logs := &mockSweepLogStore{}
		svc := NewArchiveService(events, &mockArchivedEventStore{}, &mockCounterStore{}, &mockCounterStore{}, logs)

		if _, err := svc.Sweep(ctx); err == nil {
			t.Fatal("expected error")
		}
		if len(logs.logs) != 1 || logs.logs[0].Error == nil {
			t.Errorf("sweep failure was not logged")
		}
	})
}

func TestArchiveServiceSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("archives an approved event on request", func(t *testing.T) {
		event := expiredEvent(nil)
		events := &mockExpiredEventStore{byID: map[uuid.UUID]*models.Event{event.ID: &event}}
		archive := &mockArchivedEventStore{}
		svc := NewArchiveService(events, archive, &mockCounterStore{}, &mockCounterStore{}, &mockSweepLogStore{})

		if err := svc.ArchiveEvent(ctx, event.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(archive.inserted) != 1 {
			t.Errorf("expected one snapshot")
		}
	})

	t.Run("refuses pending event", func(t *testing.T) {
		event := expiredEvent(nil)
		event.Status = models.EventPending
		events := &mockExpiredEventStore{byID: map[uuid.UUID]*models.Event{event.ID: &event}}
		svc := NewArchiveService(events, &mockArchivedEventStore{}, &mockCounterStore{}, &mockCounterStore{}, &mockSweepLogStore{})

		if err := svc.ArchiveEvent(ctx, event.ID); !errors.Is(err, apperrors.ErrConflict) {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("unknown event maps to not found", func(t *testing.T) {
		svc := NewArchiveService(&mockExpiredEventStore{}, &mockArchivedEventStore{}, &mockCounterStore{}, &mockCounterStore{}, &mockSweepLogStore{})
		if err := svc.ArchiveEvent(ctx, uuid.New()); !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Errorf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("missing snapshot maps to not archived", func(t *testing.T) {
		svc := NewArchiveService(&mockExpiredEventStore{}, &mockArchivedEventStore{}, &mockCounterStore{}, &mockCounterStore{}, &mockSweepLogStore{})
		if _, err := svc.GetArchivedEvent(ctx, uuid.New()); !errors.Is(err, apperrors.ErrEventNotArchived) {
			t.Errorf("expected ErrEventNotArchived, got %v", err)
		}
	})

	t.Run("snapshot falls back to unknown community name", func(t *testing.T) {
		event := expiredEvent(nil)
		event.CommunityName = ""
		snapshot := buildSnapshot(&event)
		if snapshot.CommunityName != "Unknown Community" {
			t.Errorf("community name = %q", snapshot.CommunityName)
		}
	})
}
