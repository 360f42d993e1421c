package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

// CreateUser inserts a new user and returns the stored record
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)`,
		user.FirstName, user.LastName, user.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user %q: %w", user.Email, storeErr(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID after insert: %w", storeErr(err))
	}
	return r.GetUserByID(ctx, int(id))
}

// GetUserByID retrieves a user by ID
func (r *UserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, storeErr(err))
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, created_at FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %q: %w", email, storeErr(err))
	}
	return user, nil
}
