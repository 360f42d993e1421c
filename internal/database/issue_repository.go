package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flowboard/flowboard/internal/models"
)

// IssueRepo handles all issue-related database operations.
type IssueRepo struct {
	db *sql.DB
}

const issueColumns = `id, key, project_key, summary, description, status, issue_type,
	reporter, assignee, created_at, updated_at, started_at, resolved_at`

// CreateIssue inserts a new issue and bumps the owning project's issue count.
// The issue key must already be set by the caller.
func (r *IssueRepo) CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	var created *models.Issue
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO issues (key, project_key, summary, description, status, issue_type, reporter, assignee)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			issue.Key, issue.ProjectKey, issue.Summary, issue.Description,
			issue.Status, issue.IssueType, issue.Reporter, issue.Assignee,
		)
		if err != nil {
			return fmt.Errorf("failed to insert issue %q: %w", issue.Key, storeErr(err))
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get issue ID after insert: %w", storeErr(err))
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE projects SET issue_count = issue_count + 1 WHERE key = ?`,
			issue.ProjectKey,
		)
		if err != nil {
			return fmt.Errorf("failed to increment issue count for %q: %w", issue.ProjectKey, storeErr(err))
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("project %q: %w", issue.ProjectKey, models.ErrNotFound)
		}

		created = issue
		created.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetIssueByID(ctx, created.ID)
}

// GetIssueByID retrieves a single issue by its numeric ID
func (r *IssueRepo) GetIssueByID(ctx context.Context, id int) (*models.Issue, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE id = ?`, id)

	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("issue %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get issue %d: %w", id, storeErr(err))
	}
	return issue, nil
}

// GetIssuesByProject retrieves all issues for a project in creation order
func (r *IssueRepo) GetIssuesByProject(ctx context.Context, projectKey string) ([]*models.Issue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE project_key = ? ORDER BY id`, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues for %q: %w", projectKey, storeErr(err))
	}
	return collectIssues(rows, projectKey)
}

// GetIssuesUpdatedSince retrieves a project's issues touched after the given time
func (r *IssueRepo) GetIssuesUpdatedSince(ctx context.Context, projectKey string, since time.Time) ([]*models.Issue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE project_key = ? AND updated_at > ? ORDER BY id`,
		projectKey, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed issues for %q: %w", projectKey, storeErr(err))
	}
	return collectIssues(rows, projectKey)
}

// UpdateIssue persists summary, description, assignment, status, and the
// workflow timestamps of an existing issue. updated_at is stamped here.
func (r *IssueRepo) UpdateIssue(ctx context.Context, issue *models.Issue) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE issues
		 SET summary = ?, description = ?, status = ?, issue_type = ?, reporter = ?, assignee = ?,
		     started_at = ?, resolved_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		issue.Summary, issue.Description, issue.Status, issue.IssueType,
		issue.Reporter, issue.Assignee,
		timeOrNil(issue.StartedAt), timeOrNil(issue.ResolvedAt), issue.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update issue %d: %w", issue.ID, storeErr(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of issue %d: %w", issue.ID, storeErr(err))
	}
	if n == 0 {
		return fmt.Errorf("issue %d: %w", issue.ID, models.ErrNotFound)
	}
	return nil
}

// CountIssuesByStatus counts a project's issues currently in the given status
func (r *IssueRepo) CountIssuesByStatus(ctx context.Context, projectKey, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE project_key = ? AND status = ?`,
		projectKey, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s issues for %q: %w", status, projectKey, storeErr(err))
	}
	return count, nil
}

// scanTarget abstracts *sql.Row and *sql.Rows for issue scanning
type scanTarget interface {
	Scan(dest ...any) error
}

func scanIssue(row scanTarget) (*models.Issue, error) {
	var issue models.Issue
	var description, assignee sql.NullString
	var startedAt, resolvedAt sql.NullTime

	err := row.Scan(
		&issue.ID, &issue.Key, &issue.ProjectKey, &issue.Summary, &description,
		&issue.Status, &issue.IssueType, &issue.Reporter, &assignee,
		&issue.CreatedAt, &issue.UpdatedAt, &startedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	issue.Description = description.String
	issue.Assignee = assignee.String
	issue.StartedAt = nullableTime(startedAt)
	issue.ResolvedAt = nullableTime(resolvedAt)
	return &issue, nil
}

func collectIssues(rows *sql.Rows, projectKey string) ([]*models.Issue, error) {
	defer func() {
		_ = rows.Close()
	}()

	var issues []*models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue row for %q: %w", projectKey, storeErr(err))
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating issue rows: %w", storeErr(err))
	}
	return issues, nil
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
