package project

import (
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// Project-related errors
var (
	// ErrInvalidKey indicates a project key that is empty or not of the
	// form PROJ (2-10 uppercase letters or digits, starting with a letter)
	ErrInvalidKey = errors.New("invalid project key")

	// ErrInvalidName indicates an empty project name
	ErrInvalidName = errors.New("project name is required")

	// ErrInvalidRole indicates an unknown assignment role
	ErrInvalidRole = errors.New("invalid project role")

	// ErrProjectExists indicates the key is already taken
	ErrProjectExists = fmt.Errorf("project already exists: %w", models.ErrConflict)
)
