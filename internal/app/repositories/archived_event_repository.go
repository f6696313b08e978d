package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopinhq/backend/internal/app/models"
)

// ArchivedEventRepository handles database operations for the
// append-only event archive
type ArchivedEventRepository struct {
	db *pgxpool.Pool
}

// NewArchivedEventRepository creates a new ArchivedEventRepository
func NewArchivedEventRepository(db *pgxpool.Pool) *ArchivedEventRepository {
	return &ArchivedEventRepository{db: db}
}

const archivedEventColumns = `id, title, date, end_date, venue, is_online, event_type,
	community_id, community_name, city_id, featured, banner_url, registration_clicks,
	created_at, archived_at`

func scanArchivedEvent(row pgx.Row, e *models.ArchivedEvent) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&e.EndDate,
		&e.Venue,
		&e.IsOnline,
		&e.EventType,
		&e.CommunityID,
		&e.CommunityName,
		&e.CityID,
		&e.Featured,
		&e.BannerURL,
		&e.RegistrationClicks,
		&e.CreatedAt,
		&e.ArchivedAt,
	)
}

// Insert writes an archive snapshot keyed by the source event's ID.
// A snapshot that already exists is left untouched; the return value
// reports whether this call actually inserted the row, so callers can
// skip counter updates on replays.
func (r *ArchivedEventRepository) Insert(ctx context.Context, e *models.ArchivedEvent) (bool, error) {
	query := `
		INSERT INTO archived_events (id, title, date, end_date, venue, is_online, event_type,
			community_id, community_name, city_id, featured, banner_url, registration_clicks,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`

	cmdTag, err := r.db.Exec(ctx, query,
		e.ID, e.Title, e.Date, e.EndDate, e.Venue, e.IsOnline, e.EventType,
		e.CommunityID, e.CommunityName, e.CityID, e.Featured, e.BannerURL,
		e.RegistrationClicks, e.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("error inserting archived event: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetAll retrieves archived events with filtering and pagination
func (r *ArchivedEventRepository) GetAll(ctx context.Context, f ArchivedEventFilter) ([]models.ArchivedEvent, int64, error) {
	query := squirrel.Select(
		"id", "title", "date", "end_date", "venue", "is_online", "event_type",
		"community_id", "community_name", "city_id", "featured", "banner_url",
		"registration_clicks", "created_at", "archived_at", "COUNT(*) OVER()",
	).
		From("archived_events").
		PlaceholderFormat(squirrel.Dollar)

	if f.CityID != nil {
		query = query.Where("city_id = ?", *f.CityID)
	}
	if f.CommunityID != nil {
		query = query.Where("community_id = ?", *f.CommunityID)
	}
	if f.EventType != nil {
		query = query.Where("event_type = ?", *f.EventType)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		query = query.Where("(title ILIKE ? OR community_name ILIKE ?)", pattern, pattern)
	}

	offset := (f.Page - 1) * f.PageSize
	query = query.OrderBy("date DESC").
		Limit(uint64(f.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.ArchivedEvent
	var total int64

	for rows.Next() {
		var e models.ArchivedEvent
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Date,
			&e.EndDate,
			&e.Venue,
			&e.IsOnline,
			&e.EventType,
			&e.CommunityID,
			&e.CommunityName,
			&e.CityID,
			&e.Featured,
			&e.BannerURL,
			&e.RegistrationClicks,
			&e.CreatedAt,
			&e.ArchivedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, e)
	}

	return events, total, nil
}

// ArchivedEventFilter bundles the archive list query parameters
type ArchivedEventFilter struct {
	CityID      *uuid.UUID
	CommunityID *uuid.UUID
	EventType   *string
	Featured    *bool
	Search      *string
	Page        int
	PageSize    int
}

// GetByID retrieves an archived event by ID
func (r *ArchivedEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ArchivedEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM archived_events WHERE id = $1`, archivedEventColumns)

	var e models.ArchivedEvent
	err := scanArchivedEvent(r.db.QueryRow(ctx, query, id), &e)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &e, nil
}

// SetFeatured toggles an archived event's featured flag
func (r *ArchivedEventRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE archived_events SET featured = $1 WHERE id = $2`, featured, id)
	if err != nil {
		return fmt.Errorf("error updating archived event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Count returns the total number of archived events
func (r *ArchivedEventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM archived_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting archived events: %w", err)
	}

	return count, nil
}
