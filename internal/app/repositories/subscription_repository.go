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

// SubscriptionRepository handles database operations for city event
// alert subscriptions
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert activates a subscription for the (email, city) pair. An
// existing row is reactivated instead of duplicated.
func (r *SubscriptionRepository) Upsert(ctx context.Context, email string, cityID uuid.UUID) error {
	query := `
		INSERT INTO event_subscriptions (email, city_id, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email, city_id)
		DO UPDATE SET is_active = TRUE, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, email, cityID)
	if err != nil {
		return fmt.Errorf("error upserting subscription: %w", err)
	}

	return nil
}

// Deactivate flips a single (email, city) subscription off. Rows
// already inactive or absent are not an error.
func (r *SubscriptionRepository) Deactivate(ctx context.Context, email string, cityID uuid.UUID) error {
	query := `
		UPDATE event_subscriptions
		SET is_active = FALSE, updated_at = NOW()
		WHERE email = $1 AND city_id = $2
	`

	_, err := r.db.Exec(ctx, query, email, cityID)
	if err != nil {
		return fmt.Errorf("error deactivating subscription: %w", err)
	}

	return nil
}

// DeactivateAllForEmail flips every subscription for the address off,
// used when the email provider reports a bounce or complaint
func (r *SubscriptionRepository) DeactivateAllForEmail(ctx context.Context, email string) (int64, error) {
	query := `
		UPDATE event_subscriptions
		SET is_active = FALSE, updated_at = NOW()
		WHERE email = $1 AND is_active = TRUE
	`

	cmdTag, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return 0, fmt.Errorf("error deactivating subscriptions: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// GetAll retrieves subscriptions with filtering and pagination for the
// admin back-office
func (r *SubscriptionRepository) GetAll(ctx context.Context, cityID *uuid.UUID, isActive *bool, search *string, page, pageSize int) ([]models.Subscription, int64, error) {
	query := squirrel.Select(
		"s.id", "s.email", "s.city_id", "ct.name", "ct.state", "s.is_active",
		"s.created_at", "s.updated_at", "COUNT(*) OVER()",
	).
		From("event_subscriptions s").
		Join("cities ct ON ct.id = s.city_id").
		PlaceholderFormat(squirrel.Dollar)

	if cityID != nil {
		query = query.Where("s.city_id = ?", *cityID)
	}
	if isActive != nil {
		query = query.Where("s.is_active = ?", *isActive)
	}
	if search != nil && *search != "" {
		query = query.Where("s.email ILIKE ?", "%"+*search+"%")
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("s.created_at DESC").
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

	var subscriptions []models.Subscription
	var total int64

	for rows.Next() {
		var s models.Subscription
		err := rows.Scan(
			&s.ID,
			&s.Email,
			&s.CityID,
			&s.CityName,
			&s.State,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		subscriptions = append(subscriptions, s)
	}

	return subscriptions, total, nil
}

// CountActive tallies all active subscriptions
func (r *SubscriptionRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_subscriptions WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subscriptions: %w", err)
	}

	return count, nil
}

// CountUniqueEmails tallies distinct subscribed addresses across all
// cities
func (r *SubscriptionRepository) CountUniqueEmails(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT email) FROM event_subscriptions WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subscriber emails: %w", err)
	}

	return count, nil
}

// CountInactive tallies unsubscribed and bounced addresses
func (r *SubscriptionRepository) CountInactive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_subscriptions WHERE is_active = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subscriptions: %w", err)
	}

	return count, nil
}

// CountActiveByCity tallies active subscriptions per city
func (r *SubscriptionRepository) CountActiveByCity(ctx context.Context) ([]CitySubscriptionTally, error) {
	query := `
		SELECT s.city_id, ct.name, COUNT(*)
		FROM event_subscriptions s
		JOIN cities ct ON ct.id = s.city_id
		WHERE s.is_active = TRUE
		GROUP BY s.city_id, ct.name
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tallies []CitySubscriptionTally
	for rows.Next() {
		var t CitySubscriptionTally
		if err := rows.Scan(&t.CityID, &t.CityName, &t.Count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		tallies = append(tallies, t)
	}

	return tallies, rows.Err()
}

// SetActive toggles one subscription from the admin back-office
func (r *SubscriptionRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE event_subscriptions SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes a subscription row outright
func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM event_subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CitySubscriptionTally is a per-city active subscriber count
type CitySubscriptionTally struct {
	CityID   uuid.UUID
	CityName string
	Count    int
}
