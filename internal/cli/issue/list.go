package issue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// ListCmd returns the issue list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's issues",
		RunE:  runList,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	issues, err := cliInstance.App.IssueService.GetIssuesByProject(ctx, projectKey)
	if err != nil {
		if fmtErr := formatter.Error("ISSUE_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, i := range issues {
			fmt.Printf("%d\n", i.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"issues":  issues,
		})
	}

	if len(issues) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	fmt.Printf("Found %d issues:\n\n", len(issues))
	for _, i := range issues {
		fmt.Printf("  [%s] %-12s %s\n", i.Key, i.Status, i.Summary)
	}

	return nil
}
