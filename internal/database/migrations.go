package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema if it does not exist yet
func runMigrations(ctx context.Context, db *sql.DB) error {
	schema := `
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

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS project_assignments (
		project_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		PRIMARY KEY (project_id, user_id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

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

	CREATE TABLE IF NOT EXISTS standups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_key TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_key) REFERENCES projects(key) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_standups_project ON standups(project_key, ended_at);

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

	_, err := db.ExecContext(ctx, schema)
	return err
}
