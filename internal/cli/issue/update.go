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

// UpdateCmd returns the issue update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an issue's fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("summary", "", "New summary")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("type", "", "New issue type: task, story, or bug")
	cmd.Flags().String("assignee", "", "New assignee (empty string unassigns)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	req := issueservice.UpdateIssueRequest{ID: id}
	// Only fields the user set on the command line are touched
	if cmd.Flags().Changed("summary") {
		v, _ := cmd.Flags().GetString("summary")
		req.Summary = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		req.Description = &v
	}
	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		req.IssueType = &v
	}
	if cmd.Flags().Changed("assignee") {
		v, _ := cmd.Flags().GetString("assignee")
		req.Assignee = &v
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	updated, err := cliInstance.App.IssueService.UpdateIssue(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("ISSUE_UPDATE_ERROR", err.Error()); fmtErr != nil {
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

	fmt.Printf("Updated %s\n", updated.Key)
	return nil
}
