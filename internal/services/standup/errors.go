package standup

import (
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// Standup-related errors
var (
	// ErrInvalidProjectKey indicates an empty or missing project key
	ErrInvalidProjectKey = errors.New("invalid project key")

	// ErrStandupActive indicates Start was called while a session for the
	// project is already running
	ErrStandupActive = fmt.Errorf("standup already active: %w", models.ErrConflict)

	// ErrNoActiveStandup indicates End was called with no running session.
	// Retrying End after a successful End observes this same error.
	ErrNoActiveStandup = fmt.Errorf("no active standup: %w", models.ErrNotActive)
)
