package metrics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/models"
)

// ThroughputCmd returns the metrics throughput subcommand
func ThroughputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "throughput",
		Short: "Issues resolved per ISO week",
		Long: `Counts resolved issues per ISO calendar week, in chronological order.
Weeks with no completions are omitted.`,
		RunE: runThroughput,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")
	cmd.Flags().Int("scope", 0, "Aggregate over a scope ID instead of a single project")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (week<TAB>count)")

	return cmd
}

func runThroughput(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	scopeID, _ := cmd.Flags().GetInt("scope")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	var subject string
	var issueSet []*models.Issue
	if scopeID != 0 {
		subject = fmt.Sprintf("scope %d", scopeID)
		issueSet, err = cliInstance.App.ScopeService.IssuesForScopeID(ctx, scopeID)
	} else {
		var projectKey string
		projectKey, err = cli.GetProjectKey(cmd)
		if err != nil {
			if fmtErr := formatter.Error("NO_PROJECT", err.Error()); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitUsage)
		}
		subject = projectKey
		issueSet, err = cliInstance.App.IssueService.GetIssuesByProject(ctx, projectKey)
	}
	if err != nil {
		if fmtErr := formatter.Error("ISSUE_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	weeks, err := cliInstance.App.MetricsService.WeeklyThroughput(issueSet)
	if err != nil {
		if fmtErr := formatter.Error("METRICS_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		for _, wc := range weeks {
			fmt.Printf("%s\t%d\n", wc.Week, wc.Count)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"subject": subject,
			"weeks":   weeks,
		})
	}

	if len(weeks) == 0 {
		fmt.Printf("No resolved issues for %s yet\n", subject)
		return nil
	}

	fmt.Printf("Weekly throughput for %s:\n", subject)
	for _, wc := range weeks {
		fmt.Printf("  %s: %d\n", wc.Week, wc.Count)
	}
	return nil
}
