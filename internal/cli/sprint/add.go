package sprint

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// AddIssueCmd returns the sprint add-issue subcommand
func AddIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-issue <sprint-id> <issue-id>",
		Short: "Add an issue to a sprint",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddIssue,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runAddIssue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	sprintID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ID", fmt.Sprintf("invalid sprint ID %q", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	issueID, err := strconv.Atoi(args[1])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ID", fmt.Sprintf("invalid issue ID %q", args[1])); fmtErr != nil {
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

	if err := cliInstance.App.SprintService.AddIssueToSprint(ctx, sprintID, issueID); err != nil {
		if fmtErr := formatter.Error("SPRINT_ADD_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]int{"sprint_id": sprintID, "issue_id": issueID})
	}

	fmt.Printf("Added issue %d to sprint %d\n", issueID, sprintID)
	return nil
}
