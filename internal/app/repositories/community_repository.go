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

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

const communityColumns = `id, name, logo, city_id, website, social_links, size, year_founded,
	previous_events, contact_email, contact_phone, verification_status, event_count,
	created_at, updated_at`

func scanCommunity(row pgx.Row, c *models.Community) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Logo,
		&c.CityID,
		&c.Website,
		&c.SocialLinks,
		&c.Size,
		&c.YearFounded,
		&c.PreviousEvents,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.VerificationStatus,
		&c.EventCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// GetAll retrieves communities with filtering and pagination
func (r *CommunityRepository) GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Community, int64, error) {
	query := squirrel.Select(
		"id", "name", "logo", "city_id", "website", "social_links", "size", "year_founded",
		"previous_events", "contact_email", "contact_phone", "verification_status", "event_count",
		"created_at", "updated_at", "COUNT(*) OVER()",
	).
		From("communities").
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

	var communities []models.Community
	var total int64

	for rows.Next() {
		var c models.Community
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Logo,
			&c.CityID,
			&c.Website,
			&c.SocialLinks,
			&c.Size,
			&c.YearFounded,
			&c.PreviousEvents,
			&c.ContactEmail,
			&c.ContactPhone,
			&c.VerificationStatus,
			&c.EventCount,
			&c.CreatedAt,
			&c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, c)
	}

	return communities, total, nil
}

// GetByID retrieves a community by ID
func (r *CommunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	query := fmt.Sprintf(`SELECT %s FROM communities WHERE id = $1`, communityColumns)

	var c models.Community
	err := scanCommunity(r.db.QueryRow(ctx, query, id), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// GetByNameAndCity retrieves a community by exact case-insensitive name
// within a city, restricted to the given verification status
func (r *CommunityRepository) GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Community, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM communities
		WHERE LOWER(name) = LOWER($1) AND city_id = $2 AND verification_status = $3
		ORDER BY created_at
		LIMIT 1`, communityColumns)

	var c models.Community
	err := scanCommunity(r.db.QueryRow(ctx, query, name, cityID, status), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// Create creates a new community
func (r *CommunityRepository) Create(ctx context.Context, c *models.Community) error {
	query := `
		INSERT INTO communities (name, logo, city_id, website, social_links, size, year_founded,
			previous_events, contact_email, contact_phone, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, event_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.Name, c.Logo, c.CityID, c.Website, c.SocialLinks, c.Size, c.YearFounded,
		c.PreviousEvents, c.ContactEmail, c.ContactPhone, c.VerificationStatus,
	).Scan(&c.ID, &c.EventCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// Update updates an existing community's editable fields
func (r *CommunityRepository) Update(ctx context.Context, c *models.Community) error {
	query := squirrel.Update("communities").
		Set("name", c.Name).
		Set("logo", c.Logo).
		Set("website", c.Website).
		Set("social_links", c.SocialLinks).
		Set("size", c.Size).
		Set("year_founded", c.YearFounded).
		Set("previous_events", c.PreviousEvents).
		Set("contact_email", c.ContactEmail).
		Set("contact_phone", c.ContactPhone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", c.ID).
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

// UpdateStatus sets a community's verification status
func (r *CommunityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	query := `
		UPDATE communities
		SET verification_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating community status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete deletes a community by ID
func (r *CommunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM communities WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting community: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CountLiveEvents counts live events that reference the community
func (r *CommunityRepository) CountLiveEvents(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE community_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}

	return count, nil
}

// TransferEvents moves all live events from one community to another
// and returns the number of events moved
func (r *CommunityRepository) TransferEvents(ctx context.Context, fromID, toID uuid.UUID) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE events SET community_id = $1 WHERE community_id = $2`, toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("error transferring events: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// IncrementEventCount bumps the community's lifetime event counter
func (r *CommunityRepository) IncrementEventCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `SELECT increment_community_event_count($1)`, id)
	if err != nil {
		return fmt.Errorf("error incrementing community event count: %w", err)
	}

	return nil
}

// FindSimilar scores existing communities in the same city against the
// submitted community profile using the database-side scorer
func (r *CommunityRepository) FindSimilar(ctx context.Context, q models.SimilarityQuery) ([]models.SimilarityMatch, error) {
	query := `
		SELECT community_id, community_name, similarity_score,
			name_score, location_score, website_score, contact_score, social_score,
			website_match, email_match, phone_match, social_match
		FROM find_similar_communities_comprehensive($1, $2, $3, $4, $5, $6)
	`

	rows, err := r.db.Query(ctx, query,
		q.Name, q.CityID, q.Website, q.OrganizerEmail, q.OrganizerPhone, q.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("error executing similarity query: %w", err)
	}
	defer rows.Close()

	var matches []models.SimilarityMatch
	for rows.Next() {
		var m models.SimilarityMatch
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Score,
			&m.Breakdown.NameScore,
			&m.Breakdown.LocationScore,
			&m.Breakdown.WebsiteScore,
			&m.Breakdown.ContactScore,
			&m.Breakdown.SocialScore,
			&m.WebsiteMatch,
			&m.EmailMatch,
			&m.PhoneMatch,
			&m.SocialMatch,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning similarity row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// CountByStatus tallies communities per verification status
func (r *CommunityRepository) CountByStatus(ctx context.Context) (map[models.VerificationStatus]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT verification_status, COUNT(*) FROM communities GROUP BY verification_status`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.VerificationStatus]int)
	for rows.Next() {
		var status models.VerificationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// GetTopByEventCount retrieves the communities with the most archived
// events, approved only
func (r *CommunityRepository) GetTopByEventCount(ctx context.Context, cityID *uuid.UUID, limit int) ([]models.Community, error) {
	query := squirrel.Select(
		"id", "name", "logo", "city_id", "website", "social_links", "size", "year_founded",
		"previous_events", "contact_email", "contact_phone", "verification_status", "event_count",
		"created_at", "updated_at",
	).
		From("communities").
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

	var communities []models.Community
	for rows.Next() {
		var c models.Community
		if err := scanCommunity(rows, &c); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, c)
	}

	return communities, nil
}
