package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// SprintRepo handles all sprint-related database operations.
type SprintRepo struct {
	db *sql.DB
}

// CreateSprint inserts a new sprint and returns the stored record
func (r *SprintRepo) CreateSprint(ctx context.Context, sprint *models.Sprint) (*models.Sprint, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sprints (name, description, project_key, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?)`,
		sprint.Name, sprint.Description, sprint.ProjectKey, sprint.StartDate, sprint.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sprint %q: %w", sprint.Name, storeErr(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get sprint ID after insert: %w", storeErr(err))
	}
	return r.GetSprintByID(ctx, int(id))
}

// GetSprintByID retrieves a sprint by its ID
func (r *SprintRepo) GetSprintByID(ctx context.Context, id int) (*models.Sprint, error) {
	sprint := &models.Sprint{}
	var description sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, project_key, start_date, end_date FROM sprints WHERE id = ?`, id,
	).Scan(&sprint.ID, &sprint.Name, &description, &sprint.ProjectKey, &sprint.StartDate, &sprint.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sprint %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sprint %d: %w", id, storeErr(err))
	}
	sprint.Description = description.String
	return sprint, nil
}

// AddIssueToSprint associates an issue with a sprint
func (r *SprintRepo) AddIssueToSprint(ctx context.Context, sprintID, issueID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sprint_issues (sprint_id, issue_id) VALUES (?, ?)
		 ON CONFLICT (sprint_id, issue_id) DO NOTHING`,
		sprintID, issueID,
	)
	if err != nil {
		return fmt.Errorf("failed to add issue %d to sprint %d: %w", issueID, sprintID, storeErr(err))
	}
	return nil
}

// GetIssuesInSprint retrieves all issues associated with a sprint
func (r *SprintRepo) GetIssuesInSprint(ctx context.Context, sprintID int) ([]*models.Issue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issues
		 WHERE id IN (SELECT issue_id FROM sprint_issues WHERE sprint_id = ?)
		 ORDER BY id`,
		sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues in sprint %d: %w", sprintID, storeErr(err))
	}
	return collectIssues(rows, fmt.Sprintf("sprint %d", sprintID))
}
