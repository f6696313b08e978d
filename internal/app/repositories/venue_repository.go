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

// VenueRepository handles database operations for venues
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository creates a new VenueRepository
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{db: db}
}

const venueColumns = `id, name, address, city_id, capacity, website, contact_email,
	contact_phone, verification_status, event_count, created_at, updated_at`

func scanVenue(row pgx.Row, v *models.Venue) error {
	return row.Scan(
		&v.ID,
		&v.Name,
		&v.Address,
		&v.CityID,
		&v.Capacity,
		&v.Website,
		&v.ContactEmail,
		&v.ContactPhone,
		&v.VerificationStatus,
		&v.EventCount,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
}

// GetAll retrieves venues with filtering and pagination
func (r *VenueRepository) GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Venue, int64, error) {
	query := squirrel.Select(
		"id", "name", "address", "city_id", "capacity", "website", "contact_email",
		"contact_phone", "verification_status", "event_count", "created_at", "updated_at",
		"COUNT(*) OVER()",
	).
		From("venues").
		PlaceholderFormat(squirrel.Dollar)

	if cityID != nil {
		query = query.Where("city_id = ?", *cityID)
	}
	if status != nil {
		query = query.Where("verification_status = ?", *status)
	}
	if search != nil && *search != "" {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("event_count DESC", "name").
		Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	var total int64

	for rows.Next() {
		var v models.Venue
		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Address,
			&v.CityID,
			&v.Capacity,
			&v.Website,
			&v.ContactEmail,
			&v.ContactPhone,
			&v.VerificationStatus,
			&v.EventCount,
			&v.CreatedAt,
			&v.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		venues = append(venues, v)
	}

	return venues, total, nil
}

// GetByID retrieves a venue by ID
func (r *VenueRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	query := fmt.Sprintf(`SELECT %s FROM venues WHERE id = $1`, venueColumns)

	var v models.Venue
	err := scanVenue(r.db.QueryRow(ctx, query, id), &v)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &v, nil
}

// GetByNameAndCity retrieves a venue by exact case-insensitive name
// within a city, restricted to the given verification status
func (r *VenueRepository) GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM venues
		WHERE LOWER(name) = LOWER($1) AND city_id = $2 AND verification_status = $3
		ORDER BY created_at
		LIMIT 1`, venueColumns)

	var v models.Venue
	err := scanVenue(r.db.QueryRow(ctx, query, name, cityID, status), &v)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &v, nil
}

// SearchByName retrieves approved venues in a city whose name contains
// the given text
func (r *VenueRepository) SearchByName(ctx context.Context, name string, cityID uuid.UUID) ([]models.Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM venues
		WHERE name ILIKE $1 AND city_id = $2 AND verification_status = $3
		ORDER BY created_at`, venueColumns)

	rows, err := r.db.Query(ctx, query, "%"+name+"%", cityID, models.VerificationApproved)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := scanVenue(rows, &v); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}

// Create creates a new venue
func (r *VenueRepository) Create(ctx context.Context, v *models.Venue) error {
	query := `
		INSERT INTO venues (name, address, city_id, capacity, website, contact_email,
			contact_phone, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, event_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		v.Name, v.Address, v.CityID, v.Capacity, v.Website, v.ContactEmail,
		v.ContactPhone, v.VerificationStatus,
	).Scan(&v.ID, &v.EventCount, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// Update updates an existing venue's editable fields
func (r *VenueRepository) Update(ctx context.Context, v *models.Venue) error {
	query := squirrel.Update("venues").
		Set("name", v.Name).
		Set("address", v.Address).
		Set("capacity", v.Capacity).
		Set("website", v.Website).
		Set("contact_email", v.ContactEmail).
		Set("contact_phone", v.ContactPhone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", v.ID).
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

// UpdateStatus sets a venue's verification status
func (r *VenueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	query := `
		UPDATE venues
		SET verification_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating venue status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete deletes a venue by ID
func (r *VenueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM venues WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting venue: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// IncrementEventCount bumps the venue's lifetime event counter
func (r *VenueRepository) IncrementEventCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `SELECT increment_venue_event_count($1)`, id)
	if err != nil {
		return fmt.Errorf("error incrementing venue event count: %w", err)
	}

	return nil
}

// Count returns the total number of venues
func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting venues: %w", err)
	}

	return count, nil
}

// GetTopByEventCount retrieves the venues that hosted the most archived
// events, approved only
func (r *VenueRepository) GetTopByEventCount(ctx context.Context, cityID *uuid.UUID, limit int) ([]models.Venue, error) {
	query := squirrel.Select(
		"id", "name", "address", "city_id", "capacity", "website", "contact_email",
		"contact_phone", "verification_status", "event_count", "created_at", "updated_at",
	).
		From("venues").
		Where("verification_status = ?", models.VerificationApproved).
		Where("event_count > 0").
		OrderBy("event_count DESC", "name").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if cityID != nil {
		query = query.Where("city_id = ?", *cityID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := scanVenue(rows, &v); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		venues = append(venues, v)
	}

	return venues, nil
}
