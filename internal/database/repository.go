package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*IssueRepo
	*ProjectRepo
	*ScopeRepo
	*StandupRepo
	*SprintRepo
	*UserRepo
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		IssueRepo:   &IssueRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		ScopeRepo:   &ScopeRepo{db: db},
		StandupRepo: &StandupRepo{db: db},
		SprintRepo:  &SprintRepo{db: db},
		UserRepo:    &UserRepo{db: db},
	}
}
