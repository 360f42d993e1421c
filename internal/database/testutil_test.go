package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/flowboard/flowboard/internal/models"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Enable foreign key constraints
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// mustCreateProject creates a project through the repository, failing the test on error
func mustCreateProject(t *testing.T, repo *Repository, key, name string) *models.Project {
	t.Helper()
	project, err := repo.CreateProject(context.Background(), &models.Project{
		Key:      key,
		Name:     name,
		WIPLimit: models.DefaultWIPLimit,
	})
	if err != nil {
		t.Fatalf("Failed to create project %s: %v", key, err)
	}
	return project
}

// mustCreateIssue creates an open issue through the repository
func mustCreateIssue(t *testing.T, repo *Repository, key, projectKey, summary string) *models.Issue {
	t.Helper()
	issue, err := repo.CreateIssue(context.Background(), &models.Issue{
		Key:        key,
		ProjectKey: projectKey,
		Summary:    summary,
		Status:     models.StatusOpen,
		IssueType:  models.IssueTypeTask,
		Reporter:   "tester",
	})
	if err != nil {
		t.Fatalf("Failed to create issue %s: %v", key, err)
	}
	return issue
}

// issueCount returns the stored issue_count for a project key
func issueCount(t *testing.T, db *sql.DB, projectKey string) int {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		`SELECT issue_count FROM projects WHERE key = ?`, projectKey).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to read issue count for %s: %v", projectKey, err)
	}
	return count
}

func timePtr(t time.Time) *time.Time {
	return &t
}
