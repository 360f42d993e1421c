package issue

import (
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// Issue-related errors
var (
	// ErrInvalidSummary indicates an empty issue summary
	ErrInvalidSummary = errors.New("issue summary is required")

	// ErrInvalidReporter indicates an empty reporter
	ErrInvalidReporter = errors.New("issue reporter is required")

	// ErrInvalidProjectKey indicates an empty or missing project key
	ErrInvalidProjectKey = errors.New("invalid project key")

	// ErrInvalidStatus indicates a status outside the known workflow states
	ErrInvalidStatus = fmt.Errorf("invalid issue status: %w", models.ErrInvalidState)

	// ErrInvalidIssueType indicates an unknown issue type
	ErrInvalidIssueType = errors.New("invalid issue type")

	// ErrWIPLimitExceeded indicates a move into in_progress would push the
	// project past its work-in-progress limit
	ErrWIPLimitExceeded = fmt.Errorf("work-in-progress limit reached: %w", models.ErrConflict)
)
