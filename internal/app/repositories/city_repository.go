package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopinhq/backend/internal/app/models"
)

// CityRepository handles database operations for cities
type CityRepository struct {
	db *pgxpool.Pool
}

// NewCityRepository creates a new CityRepository
func NewCityRepository(db *pgxpool.Pool) *CityRepository {
	return &CityRepository{db: db}
}

// GetAll retrieves all cities ordered by name
func (r *CityRepository) GetAll(ctx context.Context) ([]models.City, error) {
	query := `
		SELECT id, name, state
		FROM cities
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name, &city.State); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cities, nil
}

// GetByID retrieves a city by ID
func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	query := `
		SELECT id, name, state
		FROM cities
		WHERE id = $1
	`

	var city models.City
	err := r.db.QueryRow(ctx, query, id).Scan(&city.ID, &city.Name, &city.State)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &city, nil
}

// GetByName retrieves a city by case-insensitive name match
func (r *CityRepository) GetByName(ctx context.Context, name string) (*models.City, error) {
	query := `
		SELECT id, name, state
		FROM cities
		WHERE LOWER(name) = LOWER($1)
	`

	var city models.City
	err := r.db.QueryRow(ctx, query, name).Scan(&city.ID, &city.Name, &city.State)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &city, nil
}

// Create creates a new city
func (r *CityRepository) Create(ctx context.Context, city *models.City) error {
	query := `
		INSERT INTO cities (name, state)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, city.Name, city.State).Scan(&city.ID)
	if err != nil {
		return err
	}

	return nil
}

// Update updates an existing city
func (r *CityRepository) Update(ctx context.Context, city *models.City) error {
	query := `
		UPDATE cities
		SET name = $1, state = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, city.Name, city.State, city.ID)
	if err != nil {
		return fmt.Errorf("error updating city: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// HasRelations checks whether any community, venue, event or
// subscription still references the city
func (r *CityRepository) HasRelations(ctx context.Context, id uuid.UUID) (bool, error) {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM communities WHERE city_id = $1)
			OR EXISTS(SELECT 1 FROM venues WHERE city_id = $1)
			OR EXISTS(SELECT 1 FROM events WHERE city_id = $1)
			OR EXISTS(SELECT 1 FROM archived_events WHERE city_id = $1)
			OR EXISTS(SELECT 1 FROM event_subscriptions WHERE city_id = $1)`,
		id).Scan(&hasRelations)

	if err != nil {
		return false, fmt.Errorf("error checking city relations: %w", err)
	}

	return hasRelations, nil
}

// Delete deletes a city by ID
func (r *CityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cities WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting city: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
