package issue

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// ShowCmd returns the issue show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single issue",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (key only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	issue, err := cliInstance.App.IssueService.GetIssue(ctx, id)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("ISSUE_NOT_FOUND", err.Error(),
			"Use 'flowboard issue list --project=<key>' to see issue IDs"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%s\n", issue.Key)
		return nil
	}
	if jsonOutput {
		return formatter.Success(issue)
	}

	fmt.Printf("%s: %s\n", issue.Key, issue.Summary)
	fmt.Printf("  Status: %s, Type: %s\n", issue.Status, issue.IssueType)
	fmt.Printf("  Reporter: %s", issue.Reporter)
	if issue.Assignee != "" {
		fmt.Printf(", Assignee: %s", issue.Assignee)
	}
	fmt.Println()
	if issue.Description != "" {
		fmt.Printf("  %s\n", issue.Description)
	}
	fmt.Printf("  Created: %s\n", issue.CreatedAt.Format("2006-01-02 15:04"))
	if issue.StartedAt != nil {
		fmt.Printf("  Started: %s\n", issue.StartedAt.Format("2006-01-02 15:04"))
	}
	if issue.ResolvedAt != nil {
		fmt.Printf("  Resolved: %s\n", issue.ResolvedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
