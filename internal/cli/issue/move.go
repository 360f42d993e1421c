package issue

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	issueservice "github.com/flowboard/flowboard/internal/services/issue"
)

// MoveCmd returns the issue move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move an issue to another workflow status",
		Long: `Move an issue to open, in_progress, or resolved.

Moving into in_progress is refused when the project is already at its
work-in-progress limit.`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ID", fmt.Sprintf("invalid issue ID %q", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	status := args[1]

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	updated, err := cliInstance.App.IssueService.UpdateIssue(ctx, issueservice.UpdateIssueRequest{
		ID:     id,
		Status: &status,
	})
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("ISSUE_MOVE_ERROR", err.Error(),
			"Valid statuses: open, in_progress, resolved"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}
	if jsonOutput {
		return formatter.Success(updated)
	}

	fmt.Printf("Moved %s to %s\n", updated.Key, updated.Status)
	return nil
}
