package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Enable foreign key constraints
	_, err = db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	// Run migrations inline
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// createTestSchema creates the complete database schema for testing
func createTestSchema(db *sql.DB) error {
	schema := `
	-- Projects table
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT,
		lead TEXT,
		wip_limit INTEGER NOT NULL DEFAULT 5,
		issue_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Issues table
	CREATE TABLE IF NOT EXISTS issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		project_key TEXT NOT NULL,
		summary TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'open',
		issue_type TEXT NOT NULL DEFAULT 'task',
		reporter TEXT NOT NULL,
		assignee TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		started_at TIMESTAMP,
		resolved_at TIMESTAMP,
		FOREIGN KEY (project_key) REFERENCES projects(key) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_key);
	CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(project_key, status);

	-- Users table
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Project membership
	CREATE TABLE IF NOT EXISTS project_assignments (
		project_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		PRIMARY KEY (project_id, user_id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	-- Scopes group projects into reporting units
	CREATE TABLE IF NOT EXISTS scopes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS scope_projects (
		scope_id INTEGER NOT NULL,
		project_key TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (scope_id, project_key),
		FOREIGN KEY (scope_id) REFERENCES scopes(id) ON DELETE CASCADE,
		FOREIGN KEY (project_key) REFERENCES projects(key) ON DELETE CASCADE
	);

	-- Standup sessions
	CREATE TABLE IF NOT EXISTS standups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_key TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_key) REFERENCES projects(key) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_standups_project ON standups(project_key, ended_at);

	-- Sprints
	CREATE TABLE IF NOT EXISTS sprints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		project_key TEXT NOT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		FOREIGN KEY (project_key) REFERENCES projects(key) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sprint_issues (
		sprint_id INTEGER NOT NULL,
		issue_id INTEGER NOT NULL,
		PRIMARY KEY (sprint_id, issue_id),
		FOREIGN KEY (sprint_id) REFERENCES sprints(id) ON DELETE CASCADE,
		FOREIGN KEY (issue_id) REFERENCES issues(id) ON DELETE CASCADE
	);
	`

	_, err := db.Exec(schema)
	return err
}

// SeedProject inserts a project row directly and returns its ID
func SeedProject(t *testing.T, db *sql.DB, key, name string, wipLimit int) int {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO projects (key, name, description, wip_limit) VALUES (?, ?, ?, ?)`,
		key, name, "", wipLimit,
	)
	if err != nil {
		t.Fatalf("Failed to seed project %s: %v", key, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get project ID: %v", err)
	}
	return int(id)
}

// SeedUser inserts a user row directly and returns its ID
func SeedUser(t *testing.T, db *sql.DB, firstName, lastName, email string) int {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)`,
		firstName, lastName, email,
	)
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get user ID: %v", err)
	}
	return int(id)
}

// SeedIssue inserts an issue row directly and returns its ID. Timestamps
// other than createdAt are left to their column defaults.
func SeedIssue(t *testing.T, db *sql.DB, key, projectKey, summary, status string, createdAt time.Time) int {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO issues (key, project_key, summary, status, reporter, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 'tester', ?, ?)`,
		key, projectKey, summary, status, createdAt.UTC(), createdAt.UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to seed issue %s: %v", key, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get issue ID: %v", err)
	}
	return int(id)
}
