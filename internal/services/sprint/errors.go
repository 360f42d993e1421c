package sprint

import (
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// Sprint-related errors
var (
	// ErrInvalidName indicates an empty sprint name
	ErrInvalidName = errors.New("sprint name is required")

	// ErrInvalidDates indicates a sprint whose end does not follow its start
	ErrInvalidDates = errors.New("sprint end date must be after start date")

	// ErrCrossProjectIssue indicates an attempt to add an issue from a
	// different project to a sprint
	ErrCrossProjectIssue = fmt.Errorf("issue belongs to a different project: %w", models.ErrConflict)
)
