package sprint

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// IssuesCmd returns the sprint issues subcommand
func IssuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues <sprint-id>",
		Short: "List the issues in a sprint",
		Args:  cobra.ExactArgs(1),
		RunE:  runIssues,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (issue keys only)")

	return cmd
}

func runIssues(cmd *cobra.Command, args []string) error {
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

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	issues, err := cliInstance.App.SprintService.GetIssuesInSprint(ctx, sprintID)
	if err != nil {
		if fmtErr := formatter.Error("SPRINT_FETCH_ERROR", err.Error()); fmtErr != nil {
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
			"sprint":  sprintID,
			"issues":  issues,
		})
	}

	if len(issues) == 0 {
		fmt.Println("No issues in sprint")
		return nil
	}

	fmt.Printf("Found %d issues:\n\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s [%s] %s\n", issue.Key, issue.Status, issue.Summary)
	}
	return nil
}
