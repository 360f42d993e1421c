package scope

import (
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// Scope-related errors
var (
	// ErrInvalidName indicates an empty scope name
	ErrInvalidName = errors.New("scope name is required")

	// ErrNilScope indicates an aggregation call with no scope
	ErrNilScope = errors.New("scope is required")

	// ErrNilLookup indicates an aggregation call with no issue lookup
	ErrNilLookup = errors.New("issue lookup is required")

	// ErrDuplicateProject indicates the same project key listed twice
	ErrDuplicateProject = fmt.Errorf("duplicate project key in scope: %w", models.ErrConflict)
)
