package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopinhq/backend/internal/app/models"
)

// EventRepository handles database operations for live events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventSelectColumns = []string{
	"e.id", "e.title", "e.description", "e.banner_url", "e.date", "e.end_date",
	"e.venue", "e.venue_id", "e.is_online", "e.event_type", "e.community_id",
	"e.organizer_name", "e.organizer_email", "e.organizer_phone",
	"e.registration_url", "e.registration_clicks", "e.city_id", "e.status",
	"e.featured", "e.created_at", "c.name", "c.logo", "ct.name",
}

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.BannerURL,
		&e.Date,
		&e.EndDate,
		&e.Venue,
		&e.VenueID,
		&e.IsOnline,
		&e.EventType,
		&e.CommunityID,
		&e.OrganizerName,
		&e.OrganizerEmail,
		&e.OrganizerPhone,
		&e.RegistrationURL,
		&e.RegistrationClicks,
		&e.CityID,
		&e.Status,
		&e.Featured,
		&e.CreatedAt,
		&e.CommunityName,
		&e.CommunityLogo,
		&e.CityName,
	)
}

func baseEventQuery() squirrel.SelectBuilder {
	return squirrel.Select(eventSelectColumns...).
		From("events e").
		Join("communities c ON c.id = e.community_id").
		Join("cities ct ON ct.id = e.city_id").
		PlaceholderFormat(squirrel.Dollar)
}

// GetAll retrieves events with filtering and pagination. The upcoming
// filter matches events that have not yet ended: either the start date
// is in the future or a multi-day event is still running.
func (r *EventRepository) GetAll(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	query := baseEventQuery().Column("COUNT(*) OVER()")

	if f.Status != nil {
		query = query.Where("e.status = ?", *f.Status)
	}
	if f.CityID != nil {
		query = query.Where("e.city_id = ?", *f.CityID)
	}
	if f.EventType != nil {
		query = query.Where("e.event_type = ?", *f.EventType)
	}
	if f.Featured != nil {
		query = query.Where("e.featured = ?", *f.Featured)
	}
	if f.Upcoming != nil && *f.Upcoming {
		query = query.Where("(e.date >= NOW() OR (e.date <= NOW() AND e.end_date >= NOW()))")
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		query = query.Where("(e.title ILIKE ? OR c.name ILIKE ?)", pattern, pattern)
	}

	offset := (f.Page - 1) * f.PageSize
	query = query.OrderBy("e.date", "e.created_at").
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

	var events []models.Event
	var total int64

	for rows.Next() {
		var e models.Event
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.BannerURL,
			&e.Date,
			&e.EndDate,
			&e.Venue,
			&e.VenueID,
			&e.IsOnline,
			&e.EventType,
			&e.CommunityID,
			&e.OrganizerName,
			&e.OrganizerEmail,
			&e.OrganizerPhone,
			&e.RegistrationURL,
			&e.RegistrationClicks,
			&e.CityID,
			&e.Status,
			&e.Featured,
			&e.CreatedAt,
			&e.CommunityName,
			&e.CommunityLogo,
			&e.CityName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, e)
	}

	return events, total, nil
}

// EventFilter bundles the list query parameters
type EventFilter struct {
	Status    *string
	CityID    *uuid.UUID
	EventType *string
	Featured  *bool
	Upcoming  *bool
	Search    *string
	Page      int
	PageSize  int
}

// GetByID retrieves an event by ID with its community and city names
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := baseEventQuery().Where("e.id = ?", id)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var e models.Event
	err = scanEvent(r.db.QueryRow(ctx, sql, args...), &e)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &e, nil
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (title, description, banner_url, date, end_date, venue, venue_id,
			is_online, event_type, community_id, organizer_name, organizer_email,
			organizer_phone, registration_url, city_id, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, registration_clicks, created_at
	`

	err := r.db.QueryRow(ctx, query,
		e.Title, e.Description, e.BannerURL, e.Date, e.EndDate, e.Venue, e.VenueID,
		e.IsOnline, e.EventType, e.CommunityID, e.OrganizerName, e.OrganizerEmail,
		e.OrganizerPhone, e.RegistrationURL, e.CityID, e.Status, e.Featured,
	).Scan(&e.ID, &e.RegistrationClicks, &e.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// Update updates an existing event's editable fields
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	query := squirrel.Update("events").
		Set("title", e.Title).
		Set("description", e.Description).
		Set("banner_url", e.BannerURL).
		Set("date", e.Date).
		Set("end_date", e.EndDate).
		Set("venue", e.Venue).
		Set("venue_id", e.VenueID).
		Set("is_online", e.IsOnline).
		Set("event_type", e.EventType).
		Set("registration_url", e.RegistrationURL).
		Set("featured", e.Featured).
		Where("id = ?", e.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// UpdateStatus sets an event's moderation status
func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error {
	query := `
		UPDATE events
		SET status = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating event status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// SetFeatured toggles an event's featured flag
func (r *EventRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE events SET featured = $1 WHERE id = $2`, featured, id)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// IncrementRegistrationClicks bumps the click counter in a single
// statement so concurrent clicks never lose updates
func (r *EventRepository) IncrementRegistrationClicks(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE events SET registration_clicks = registration_clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing registration clicks: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// ListExpiredApproved retrieves approved events whose end date, or
// start date for single-day events, has passed
func (r *EventRepository) ListExpiredApproved(ctx context.Context, now time.Time) ([]models.Event, error) {
	query := baseEventQuery().
		Where("e.status = ?", models.EventApproved).
		Where("COALESCE(e.end_date, e.date) < ?", now).
		OrderBy("e.date")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByStatus tallies live events per moderation status
func (r *EventRepository) CountByStatus(ctx context.Context) (map[models.EventStatus]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM events GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.EventStatus]int)
	for rows.Next() {
		var status models.EventStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// SumRegistrationClicks totals click counters across live and archived
// events
func (r *EventRepository) SumRegistrationClicks(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(clicks), 0) FROM (
			SELECT registration_clicks AS clicks FROM events
			UNION ALL
			SELECT registration_clicks FROM archived_events
		) t`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing registration clicks: %w", err)
	}

	return total, nil
}

// MonthlyClickTally is a per-month registration click total
type MonthlyClickTally struct {
	Month  string
	Clicks int
}

// CommunityClickTally is a per-community registration click total.
// CommunityID is nil when the community was deleted after archival.
type CommunityClickTally struct {
	CommunityID   *uuid.UUID
	CommunityName string
	Clicks        int
}

// SumClicksByCity totals click counters per city across live and
// archived events
func (r *EventRepository) SumClicksByCity(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT city_id, SUM(registration_clicks) FROM (
			SELECT city_id, registration_clicks FROM events
			UNION ALL
			SELECT city_id, registration_clicks FROM archived_events
		) t
		GROUP BY city_id`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clicks := make(map[uuid.UUID]int)
	for rows.Next() {
		var cityID uuid.UUID
		var count int
		if err := rows.Scan(&cityID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clicks[cityID] = count
	}

	return clicks, rows.Err()
}

// SumClicksByMonth totals click counters per event month across live
// and archived events
func (r *EventRepository) SumClicksByMonth(ctx context.Context) ([]MonthlyClickTally, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, SUM(registration_clicks) FROM (
			SELECT date, registration_clicks FROM events
			UNION ALL
			SELECT date, registration_clicks FROM archived_events
		) t
		GROUP BY to_char(date, 'YYYY-MM')
		ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tallies []MonthlyClickTally
	for rows.Next() {
		var t MonthlyClickTally
		if err := rows.Scan(&t.Month, &t.Clicks); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		tallies = append(tallies, t)
	}

	return tallies, rows.Err()
}

// SumClicksByCommunity totals click counters per community across live
// and archived events. The live community name wins; snapshots of
// deleted communities fall back to the name denormalized at archive
// time.
func (r *EventRepository) SumClicksByCommunity(ctx context.Context) ([]CommunityClickTally, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.community_id, COALESCE(c.name, t.community_name) AS community_name,
		       SUM(t.registration_clicks) AS clicks
		FROM (
			SELECT community_id, '' AS community_name, registration_clicks FROM events
			UNION ALL
			SELECT community_id, community_name, registration_clicks FROM archived_events
		) t
		LEFT JOIN communities c ON c.id = t.community_id
		GROUP BY t.community_id, COALESCE(c.name, t.community_name)
		ORDER BY clicks DESC`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tallies []CommunityClickTally
	for rows.Next() {
		var t CommunityClickTally
		if err := rows.Scan(&t.CommunityID, &t.CommunityName, &t.Clicks); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		tallies = append(tallies, t)
	}

	return tallies, rows.Err()
}

// CountByCity tallies approved and archived events per city
func (r *EventRepository) CountByCity(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT city_id, COUNT(*) FROM (
			SELECT city_id FROM events WHERE status = $1
			UNION ALL
			SELECT city_id FROM archived_events
		) t
		GROUP BY city_id`, models.EventApproved)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var cityID uuid.UUID
		var count int
		if err := rows.Scan(&cityID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[cityID] = count
	}

	return counts, rows.Err()
}

// CountByType tallies approved and archived events per event type
func (r *EventRepository) CountByType(ctx context.Context) (map[models.EventType]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT event_type, COUNT(*) FROM (
			SELECT event_type FROM events WHERE status = $1
			UNION ALL
			SELECT event_type FROM archived_events
		) t
		GROUP BY event_type`, models.EventApproved)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.EventType]int)
	for rows.Next() {
		var eventType models.EventType
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[eventType] = count
	}

	return counts, rows.Err()
}
