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

// DuplicateRepository handles database operations for flagged
// duplicate community candidates
type DuplicateRepository struct {
	db *pgxpool.Pool
}

// NewDuplicateRepository creates a new DuplicateRepository
func NewDuplicateRepository(db *pgxpool.Pool) *DuplicateRepository {
	return &DuplicateRepository{db: db}
}

const duplicateColumns = `id, original_community_id, original_community_name,
	duplicate_community_id, duplicate_community_name, similarity_score, score_breakdown,
	detection_method, website_match, organizer_email_match, organizer_phone_match,
	social_media_match, city_id, admin_status, admin_notes, reviewed_by, reviewed_at,
	detected_at`

func scanDuplicate(row pgx.Row, d *models.DuplicateCandidate) error {
	return row.Scan(
		&d.ID,
		&d.OriginalCommunityID,
		&d.OriginalCommunityName,
		&d.DuplicateCommunityID,
		&d.DuplicateCommunityName,
		&d.SimilarityScore,
		&d.ScoreBreakdown,
		&d.DetectionMethod,
		&d.WebsiteMatch,
		&d.OrganizerEmailMatch,
		&d.OrganizerPhoneMatch,
		&d.SocialMediaMatch,
		&d.CityID,
		&d.AdminStatus,
		&d.AdminNotes,
		&d.ReviewedBy,
		&d.ReviewedAt,
		&d.DetectedAt,
	)
}

// Create writes a new duplicate candidate audit row
func (r *DuplicateRepository) Create(ctx context.Context, d *models.DuplicateCandidate) error {
	query := `
		INSERT INTO admin_community_duplicates (original_community_id, original_community_name,
			duplicate_community_id, duplicate_community_name, similarity_score, score_breakdown,
			detection_method, website_match, organizer_email_match, organizer_phone_match,
			social_media_match, city_id, admin_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, detected_at
	`

	err := r.db.QueryRow(ctx, query,
		d.OriginalCommunityID, d.OriginalCommunityName,
		d.DuplicateCommunityID, d.DuplicateCommunityName,
		d.SimilarityScore, d.ScoreBreakdown, d.DetectionMethod,
		d.WebsiteMatch, d.OrganizerEmailMatch, d.OrganizerPhoneMatch,
		d.SocialMediaMatch, d.CityID, d.AdminStatus,
	).Scan(&d.ID, &d.DetectedAt)
	if err != nil {
		return fmt.Errorf("error inserting duplicate candidate: %w", err)
	}

	return nil
}

// GetAll retrieves duplicate candidates, highest score first
func (r *DuplicateRepository) GetAll(ctx context.Context, status *string, page, pageSize int) ([]models.DuplicateCandidate, int64, error) {
	query := squirrel.Select(
		"id", "original_community_id", "original_community_name",
		"duplicate_community_id", "duplicate_community_name", "similarity_score",
		"score_breakdown", "detection_method", "website_match", "organizer_email_match",
		"organizer_phone_match", "social_media_match", "city_id", "admin_status",
		"admin_notes", "reviewed_by", "reviewed_at", "detected_at", "COUNT(*) OVER()",
	).
		From("admin_community_duplicates").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("admin_status = ?", *status)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("similarity_score DESC", "detected_at DESC").
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

	var duplicates []models.DuplicateCandidate
	var total int64

	for rows.Next() {
		var d models.DuplicateCandidate
		err := rows.Scan(
			&d.ID,
			&d.OriginalCommunityID,
			&d.OriginalCommunityName,
			&d.DuplicateCommunityID,
			&d.DuplicateCommunityName,
			&d.SimilarityScore,
			&d.ScoreBreakdown,
			&d.DetectionMethod,
			&d.WebsiteMatch,
			&d.OrganizerEmailMatch,
			&d.OrganizerPhoneMatch,
			&d.SocialMediaMatch,
			&d.CityID,
			&d.AdminStatus,
			&d.AdminNotes,
			&d.ReviewedBy,
			&d.ReviewedAt,
			&d.DetectedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		duplicates = append(duplicates, d)
	}

	return duplicates, total, nil
}

// GetByID retrieves a duplicate candidate by ID
func (r *DuplicateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DuplicateCandidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_community_duplicates WHERE id = $1`, duplicateColumns)

	var d models.DuplicateCandidate
	err := scanDuplicate(r.db.QueryRow(ctx, query, id), &d)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &d, nil
}

// Resolve records the admin's verdict on a pending candidate. Rows
// already resolved are not touched; the return value reports whether
// this call resolved the candidate.
func (r *DuplicateRepository) Resolve(ctx context.Context, id uuid.UUID, status models.DuplicateStatus, notes, reviewedBy string, reviewedAt time.Time) (bool, error) {
	query := `
		UPDATE admin_community_duplicates
		SET admin_status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $5 AND admin_status = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		status, notes, reviewedBy, reviewedAt, id, models.DuplicatePending)
	if err != nil {
		return false, fmt.Errorf("error resolving duplicate candidate: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
