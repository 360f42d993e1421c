package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

// CreateProject inserts a new project and returns the stored record
func (r *ProjectRepo) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (key, name, description, lead, wip_limit)
		 VALUES (?, ?, ?, ?, ?)`,
		project.Key, project.Name, project.Description, project.Lead, project.WIPLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project %q: %w", project.Key, storeErr(err))
	}
	return r.GetProjectByKey(ctx, project.Key)
}

// GetProjectByKey retrieves a project by its unique key
func (r *ProjectRepo) GetProjectByKey(ctx context.Context, key string) (*models.Project, error) {
	project := &models.Project{}
	var description, lead sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, key, name, description, lead, wip_limit, issue_count, created_at
		 FROM projects WHERE key = ?`, key,
	).Scan(&project.ID, &project.Key, &project.Name, &description, &lead,
		&project.WIPLimit, &project.IssueCount, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %q: %w", key, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project %q: %w", key, storeErr(err))
	}

	project.Description = description.String
	project.Lead = lead.String
	return project, nil
}

// GetAllProjects retrieves all projects ordered by ID
func (r *ProjectRepo) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, key, name, description, lead, wip_limit, issue_count, created_at
		 FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", storeErr(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		var description, lead sql.NullString
		if err := rows.Scan(&project.ID, &project.Key, &project.Name, &description, &lead,
			&project.WIPLimit, &project.IssueCount, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", storeErr(err))
		}
		project.Description = description.String
		project.Lead = lead.String
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating project rows: %w", storeErr(err))
	}
	return projects, nil
}

// IncrementIssueCount bumps the derived issue counter for a project
func (r *ProjectRepo) IncrementIssueCount(ctx context.Context, projectKey string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET issue_count = issue_count + 1 WHERE key = ?`, projectKey)
	if err != nil {
		return fmt.Errorf("failed to increment issue count for %q: %w", projectKey, storeErr(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %q: %w", projectKey, models.ErrNotFound)
	}
	return nil
}

// AssignUserToProject records a user's role on a project, replacing any prior role
func (r *ProjectRepo) AssignUserToProject(ctx context.Context, projectID, userID int, role string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_assignments (project_id, user_id, role)
		 VALUES (?, ?, ?)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = excluded.role`,
		projectID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to assign user %d to project %d: %w", userID, projectID, storeErr(err))
	}
	return nil
}

// RemoveUserFromProject deletes a user's assignment from a project
func (r *ProjectRepo) RemoveUserFromProject(ctx context.Context, projectID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM project_assignments WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove user %d from project %d: %w", userID, projectID, storeErr(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assignment of user %d on project %d: %w", userID, projectID, models.ErrNotFound)
	}
	return nil
}
