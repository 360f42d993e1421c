package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/flowboard/flowboard/internal/models"
)

// ScopeRepo handles all scope-related database operations.
type ScopeRepo struct {
	db *sql.DB
}

// CreateScope inserts a scope and its ordered project memberships in one transaction
func (r *ScopeRepo) CreateScope(ctx context.Context, name, description string, projectKeys []string) (*models.Scope, error) {
	var scopeID int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO scopes (name, description) VALUES (?, ?)`, name, description)
		if err != nil {
			return fmt.Errorf("failed to insert scope %q: %w", name, storeErr(err))
		}

		scopeID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get scope ID after insert: %w", storeErr(err))
		}

		for position, projectKey := range projectKeys {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO scope_projects (scope_id, project_key, position) VALUES (?, ?, ?)`,
				scopeID, projectKey, position)
			if err != nil {
				return fmt.Errorf("failed to add project %q to scope %q: %w", projectKey, name, storeErr(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetScopeByID(ctx, int(scopeID))
}

// GetScopeByID retrieves a scope with its member project keys in stored order
func (r *ScopeRepo) GetScopeByID(ctx context.Context, id int) (*models.Scope, error) {
	scope := &models.Scope{}
	var description sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM scopes WHERE id = ?`, id,
	).Scan(&scope.ID, &scope.Name, &description, &scope.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scope %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get scope %d: %w", id, storeErr(err))
	}
	scope.Description = description.String

	keys, err := r.projectKeysForScope(ctx, id)
	if err != nil {
		return nil, err
	}
	scope.ProjectKeys = keys
	return scope, nil
}

// GetAllScopes retrieves all scopes with their member project keys
func (r *ScopeRepo) GetAllScopes(ctx context.Context) ([]*models.Scope, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM scopes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all scopes: %w", storeErr(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var scopes []*models.Scope
	for rows.Next() {
		scope := &models.Scope{}
		var description sql.NullString
		if err := rows.Scan(&scope.ID, &scope.Name, &description, &scope.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scope row: %w", storeErr(err))
		}
		scope.Description = description.String
		scopes = append(scopes, scope)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating scope rows: %w", storeErr(err))
	}

	for _, scope := range scopes {
		keys, err := r.projectKeysForScope(ctx, scope.ID)
		if err != nil {
			return nil, err
		}
		scope.ProjectKeys = keys
	}
	return scopes, nil
}

// AddProjectToScope appends a project to a scope; adding an existing member is a no-op
func (r *ScopeRepo) AddProjectToScope(ctx context.Context, scopeID int, projectKey string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scope_projects (scope_id, project_key, position)
		 SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM scope_projects WHERE scope_id = ?
		 ON CONFLICT (scope_id, project_key) DO NOTHING`,
		scopeID, projectKey, scopeID,
	)
	if err != nil {
		return fmt.Errorf("failed to add project %q to scope %d: %w", projectKey, scopeID, storeErr(err))
	}
	return nil
}

// RemoveProjectsFromScope deletes the given project memberships from a scope
func (r *ScopeRepo) RemoveProjectsFromScope(ctx context.Context, scopeID int, projectKeys []string) error {
	if len(projectKeys) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(projectKeys))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(projectKeys)+1)
	args = append(args, scopeID)
	for _, key := range projectKeys {
		args = append(args, key)
	}

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM scope_projects WHERE scope_id = ? AND project_key IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to remove projects from scope %d: %w", scopeID, storeErr(err))
	}
	return nil
}

func (r *ScopeRepo) projectKeysForScope(ctx context.Context, scopeID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_key FROM scope_projects WHERE scope_id = ? ORDER BY position`, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for scope %d: %w", scopeID, storeErr(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan scope project row: %w", storeErr(err))
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating scope project rows: %w", storeErr(err))
	}
	return keys, nil
}
