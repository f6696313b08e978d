package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/logger"
)

const sweepAction = "archive_expired_events"

// unknownCommunityName is denormalized into snapshots whose community
// row carried no name
const unknownCommunityName = "Unknown Community"

// expiredEventStore is the live-event access the archiver needs
type expiredEventStore interface {
	ListExpiredApproved(ctx context.Context, now time.Time) ([]models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// archivedEventStore is the archive access the archiver needs
type archivedEventStore interface {
	Insert(ctx context.Context, e *models.ArchivedEvent) (bool, error)
	GetAll(ctx context.Context, f repositories.ArchivedEventFilter) ([]models.ArchivedEvent, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ArchivedEvent, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

// communityCounterStore bumps community lifetime counters
type communityCounterStore interface {
	IncrementEventCount(ctx context.Context, id uuid.UUID) error
}

// venueCounterStore bumps venue lifetime counters
type venueCounterStore interface {
	IncrementEventCount(ctx context.Context, id uuid.UUID) error
}

// sweepLogStore records sweep runs
type sweepLogStore interface {
	Create(ctx context.Context, log *models.SweepLog) error
	GetRecent(ctx context.Context, limit int) ([]models.SweepLog, error)
}

// SweepResult tallies one archival sweep
type SweepResult struct {
	Scanned  int
	Archived int
	Skipped  int
	Failed   int
}

// ArchiveService moves finished events into the append-only archive
// and maintains the leaderboard counters
type ArchiveService struct {
	eventStore     expiredEventStore
	archivedStore  archivedEventStore
	communityStore communityCounterStore
	venueStore     venueCounterStore
	sweepLogStore  sweepLogStore
}

// NewArchiveService creates a new archive service instance
func NewArchiveService(eventStore expiredEventStore, archivedStore archivedEventStore, communityStore communityCounterStore, venueStore venueCounterStore, sweepLogStore sweepLogStore) *ArchiveService {
	return &ArchiveService{
		eventStore:     eventStore,
		archivedStore:  archivedStore,
		communityStore: communityStore,
		venueStore:     venueStore,
		sweepLogStore:  sweepLogStore,
	}
}

// Sweep archives every approved event whose end date has passed. One
// broken event never aborts the run; failures are tallied and the
// event is retried on the next sweep.
func (s *ArchiveService) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	expired, err := s.eventStore.ListExpiredApproved(ctx, time.Now())
	if err != nil {
		s.logSweep(ctx, result, err)
		return result, err
	}

	result.Scanned = len(expired)
	for i := range expired {
		inserted, err := s.archiveOne(ctx, &expired[i])
		switch {
		case err != nil:
			result.Failed++
			logger.Error().Err(err).Str("event", expired[i].Title).
				Msg("Failed to archive event")
		case inserted:
			result.Archived++
		default:
			result.Skipped++
		}
	}

	logger.Info().Int("scanned", result.Scanned).Int("archived", result.Archived).
		Int("skipped", result.Skipped).Int("failed", result.Failed).
		Msg("Archival sweep finished")

	s.logSweep(ctx, result, nil)
	return result, nil
}

// archiveOne snapshots a single event, bumps the counters when the
// snapshot was actually written, and removes the live row. A snapshot
// left over from an earlier interrupted run acts as a processed
// marker: the counters are not bumped again.
func (s *ArchiveService) archiveOne(ctx context.Context, event *models.Event) (bool, error) {
	snapshot := buildSnapshot(event)

	inserted, err := s.archivedStore.Insert(ctx, snapshot)
	if err != nil {
		return false, err
	}

	if inserted {
		if err := s.communityStore.IncrementEventCount(ctx, event.CommunityID); err != nil {
			logger.Error().Err(err).Str("event", event.Title).
				Msg("Failed to bump community event count")
		}
		if event.VenueID != nil {
			if err := s.venueStore.IncrementEventCount(ctx, *event.VenueID); err != nil {
				logger.Error().Err(err).Str("event", event.Title).
					Msg("Failed to bump venue event count")
			}
		}
	}

	if err := s.eventStore.Delete(ctx, event.ID); err != nil {
		return inserted, err
	}

	return inserted, nil
}

func buildSnapshot(event *models.Event) *models.ArchivedEvent {
	communityName := event.CommunityName
	if communityName == "" {
		communityName = unknownCommunityName
	}

	venue := event.Venue
	if venue == "" {
		venue = onlineVenueLabel
	}

	communityID := event.CommunityID
	return &models.ArchivedEvent{
		ID:                 event.ID,
		Title:              event.Title,
		Date:               event.Date,
		EndDate:            event.EndDate,
		Venue:              venue,
		IsOnline:           event.IsOnline,
		EventType:          event.EventType,
		CommunityID:        &communityID,
		CommunityName:      communityName,
		CityID:             event.CityID,
		Featured:           event.Featured,
		BannerURL:          event.BannerURL,
		RegistrationClicks: event.RegistrationClicks,
		CreatedAt:          event.CreatedAt,
	}
}

// ArchiveEvent archives a single event on admin request, regardless of
// its end date
func (s *ArchiveService) ArchiveEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}
	if event.Status != models.EventApproved {
		return apperrors.NewConflictError("only approved events can be archived")
	}

	_, err = s.archiveOne(ctx, event)
	return err
}

func (s *ArchiveService) logSweep(ctx context.Context, result SweepResult, sweepErr error) {
	log := &models.SweepLog{
		Action: sweepAction,
		Result: map[string]int{
			"scanned":  result.Scanned,
			"archived": result.Archived,
			"skipped":  result.Skipped,
			"failed":   result.Failed,
		},
	}
	if sweepErr != nil {
		msg := sweepErr.Error()
		log.Error = &msg
	}

	if err := s.sweepLogStore.Create(ctx, log); err != nil {
		logger.Error().Err(err).Msg("Failed to record sweep log")
	}
}

// GetArchivedEvents retrieves archived events with filtering
func (s *ArchiveService) GetArchivedEvents(ctx context.Context, f repositories.ArchivedEventFilter) ([]models.ArchivedEvent, int64, error) {
	return s.archivedStore.GetAll(ctx, f)
}

// GetArchivedEvent retrieves a single archived event
func (s *ArchiveService) GetArchivedEvent(ctx context.Context, id uuid.UUID) (*models.ArchivedEvent, error) {
	event, err := s.archivedStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.ErrEventNotArchived
	}

	return event, nil
}

// SetArchivedFeatured toggles an archived event's featured flag
func (s *ArchiveService) SetArchivedFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if _, err := s.GetArchivedEvent(ctx, id); err != nil {
		return err
	}
	return s.archivedStore.SetFeatured(ctx, id, featured)
}

// GetSweepLogs retrieves the most recent sweep runs
func (s *ArchiveService) GetSweepLogs(ctx context.Context, limit int) ([]models.SweepLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.sweepLogStore.GetRecent(ctx, limit)
}
