package issue

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/models"
	issueservice "github.com/flowboard/flowboard/internal/services/issue"
)

// CreateCmd returns the issue create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new issue",
		Long: `Create a new issue in a project. Issues always start open and get a
generated key like PROJ-004.

Examples:
  # Simple issue
  flowboard issue create --project=PROJ --summary="Fix login" --reporter=alice

  # Quiet mode for bash capture
  ISSUE_ID=$(flowboard issue create --project=PROJ --summary="Fix login" --reporter=alice --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	cmd.Flags().String("summary", "", "Issue summary (required)")
	if err := cmd.MarkFlagRequired("summary"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("reporter", "", "Reporter (required)")
	if err := cmd.MarkFlagRequired("reporter"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("description", "", "Issue description")
	cmd.Flags().String("type", models.IssueTypeTask, "Issue type: task, story, or bug")
	cmd.Flags().String("assignee", "", "Assignee")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	summary, _ := cmd.Flags().GetString("summary")
	description, _ := cmd.Flags().GetString("description")
	issueType, _ := cmd.Flags().GetString("type")
	reporter, _ := cmd.Flags().GetString("reporter")
	assignee, _ := cmd.Flags().GetString("assignee")
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

	created, err := cliInstance.App.IssueService.CreateIssue(ctx, issueservice.CreateIssueRequest{
		ProjectKey:  projectKey,
		Summary:     summary,
		Description: description,
		IssueType:   issueType,
		Reporter:    reporter,
		Assignee:    assignee,
	})
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("ISSUE_CREATE_ERROR", err.Error(),
			"Use 'flowboard project list' to see available projects"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(created)
	}

	fmt.Printf("Created issue %s: %s\n", created.Key, created.Summary)
	return nil
}
