package standup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/models"
)

// StartCmd returns the standup start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a standup for a project",
		Long: `Start a standup session and snapshot the project's board.

Only one session per project can be active at a time.`,
		RunE: runStart,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	projectKey, err := cli.GetProjectKey(cmd)
	if err != nil {
		if fmtErr := formatter.Error("NO_PROJECT", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	session, err := cliInstance.App.StandupService.Start(ctx, projectKey)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("STANDUP_START_ERROR", err.Error(),
			"Use 'flowboard standup end' to finish the running session first"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"session": session,
		})
	}

	fmt.Printf("Standup started for %s at %s\n\n", session.ProjectKey, session.StartedAt.Format("15:04"))
	for _, column := range models.ColumnOrder() {
		fmt.Printf("%s (%d):\n", column, len(session.Snapshot[column]))
		for _, issue := range session.Snapshot[column] {
			fmt.Printf("  %s %s\n", issue.Key, issue.Summary)
		}
	}
	return nil
}
