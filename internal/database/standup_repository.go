package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flowboard/flowboard/internal/models"
)

// StandupRepo persists standup session records. The single-active-session
// invariant is enforced in memory by the standup service; this repo only
// keeps the historical rows.
type StandupRepo struct {
	db *sql.DB
}

// CreateStandup inserts a new session row and returns its ID
func (r *StandupRepo) CreateStandup(ctx context.Context, projectKey string, startedAt time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO standups (project_key, started_at) VALUES (?, ?)`,
		projectKey, startedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert standup for %q: %w", projectKey, storeErr(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get standup ID after insert: %w", storeErr(err))
	}
	return int(id), nil
}

// EndStandup stamps the ended time on an open session row
func (r *StandupRepo) EndStandup(ctx context.Context, standupID int, endedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE standups SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		endedAt, standupID,
	)
	if err != nil {
		return fmt.Errorf("failed to end standup %d: %w", standupID, storeErr(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("open standup %d: %w", standupID, models.ErrNotFound)
	}
	return nil
}

// GetLastStandupEnd returns when the project's most recent standup ended,
// or nil if no standup has ever ended for the project.
func (r *StandupRepo) GetLastStandupEnd(ctx context.Context, projectKey string) (*time.Time, error) {
	var endedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT ended_at FROM standups
		 WHERE project_key = ? AND ended_at IS NOT NULL
		 ORDER BY ended_at DESC LIMIT 1`,
		projectKey,
	).Scan(&endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last standup end for %q: %w", projectKey, storeErr(err))
	}
	return &endedAt, nil
}
