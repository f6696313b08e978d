package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopinhq/backend/internal/app/models"
)

// SweepLogRepository handles database operations for archival sweep
// run records
type SweepLogRepository struct {
	db *pgxpool.Pool
}

// NewSweepLogRepository creates a new SweepLogRepository
func NewSweepLogRepository(db *pgxpool.Pool) *SweepLogRepository {
	return &SweepLogRepository{db: db}
}

// Create writes a sweep run record
func (r *SweepLogRepository) Create(ctx context.Context, log *models.SweepLog) error {
	query := `
		INSERT INTO sweep_logs (action, result, error)
		VALUES ($1, $2, $3)
		RETURNING id, executed_at
	`

	err := r.db.QueryRow(ctx, query, log.Action, log.Result, log.Error).
		Scan(&log.ID, &log.ExecutedAt)
	if err != nil {
		return fmt.Errorf("error inserting sweep log: %w", err)
	}

	return nil
}

// GetRecent retrieves the most recent sweep runs
func (r *SweepLogRepository) GetRecent(ctx context.Context, limit int) ([]models.SweepLog, error) {
	query := `
		SELECT id, action, result, error, executed_at
		FROM sweep_logs
		ORDER BY executed_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var logs []models.SweepLog
	for rows.Next() {
		var log models.SweepLog
		if err := rows.Scan(&log.ID, &log.Action, &log.Result, &log.Error, &log.ExecutedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
