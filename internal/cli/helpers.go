package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/models"
)

// ExitCodeForError maps domain error kinds onto CLI exit codes
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrInvalidState):
		return ExitDataErr
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrNotActive):
		return ExitValidation
	default:
		return ExitError
	}
}

// GetProjectKey reads the project key from the --project flag, falling back
// to the FLOWBOARD_PROJECT environment variable
func GetProjectKey(cmd *cobra.Command) (string, error) {
	key, _ := cmd.Flags().GetString("project")
	if key != "" {
		return key, nil
	}
	if envKey := os.Getenv("FLOWBOARD_PROJECT"); envKey != "" {
		return envKey, nil
	}
	return "", fmt.Errorf("no project specified (use --project or set FLOWBOARD_PROJECT)")
}
