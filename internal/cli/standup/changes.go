package standup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// ChangesCmd returns the standup changes subcommand
func ChangesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changes",
		Short: "List issues changed since the last standup",
		Long: `List the project's issues updated since the last standup ended.

When no standup has ever run for the project, every issue is listed.`,
		RunE: runChanges,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (issue keys only)")

	return cmd
}

func runChanges(cmd *cobra.Command, args []string) error {
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

	issues, err := cliInstance.App.StandupService.ChangedSinceLastStandup(ctx, projectKey)
	if err != nil {
		if fmtErr := formatter.Error("STANDUP_CHANGES_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		for _, issue := range issues {
			fmt.Printf("%s\n", issue.Key)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": projectKey,
			"issues":  issues,
		})
	}

	if len(issues) == 0 {
		fmt.Println("No changes since the last standup")
		return nil
	}

	fmt.Printf("%d issues changed since the last standup:\n\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s [%s] %s\n", issue.Key, issue.Status, issue.Summary)
	}
	return nil
}
