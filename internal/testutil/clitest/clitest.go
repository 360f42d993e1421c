// Package clitest wires a CLI instance over an in-memory database so
// command integration tests run without touching real config or data files.
package clitest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/app"
	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/config"
	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/testutil"
)

// SetupCLITest creates an in-memory database and an app container over it
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)

	cfg := &config.Config{}
	testApp := app.New(repo, nil, cfg)

	return db, testApp
}

// ExecuteCLICommand executes a CLI command against a test app instance.
// The app is injected through the command context so GetCLIFromContext
// resolves it instead of initializing a real CLI.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetArgs(args)

	ctx := cli.WithCLI(context.Background(), &cli.CLI{App: testApp})
	cmd.SetContext(ctx)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var output string
	var executeErr error

	output = testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}
