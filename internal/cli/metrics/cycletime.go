package metrics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// CycleTimeCmd returns the metrics cycle-time subcommand
func CycleTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle-time",
		Short: "Average, longest, and shortest cycle time for a project",
		Long: `Cycle time is the whole number of days from an issue's creation to its
resolution. Only resolved issues contribute; a project with none reports
no data rather than zero.`,
		RunE: runCycleTime,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (average only)")

	return cmd
}

func runCycleTime(cmd *cobra.Command, args []string) error {
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
		os.Exit(cli.ExitCodeForError(err))
	}

	metricsService := cliInstance.App.MetricsService

	average, err := metricsService.AverageCycleTime(issues)
	if err != nil {
		if fmtErr := formatter.Error("METRICS_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
	longest, err := metricsService.Longest(issues)
	if err != nil {
		if fmtErr := formatter.Error("METRICS_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
	shortest, err := metricsService.Shortest(issues)
	if err != nil {
		if fmtErr := formatter.Error("METRICS_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		if average == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Printf("%.1f\n", *average)
		return nil
	}

	if jsonOutput {
		payload := map[string]interface{}{
			"success": true,
			"project": projectKey,
			"average": average,
		}
		if longest != nil {
			payload["longest"] = longest.Key
		}
		if shortest != nil {
			payload["shortest"] = shortest.Key
		}
		return json.NewEncoder(os.Stdout).Encode(payload)
	}

	if average == nil {
		fmt.Printf("No resolved issues in %s yet\n", projectKey)
		return nil
	}

	fmt.Printf("Cycle time for %s:\n", projectKey)
	fmt.Printf("  Average: %.1f days\n", *average)
	if longest != nil {
		fmt.Printf("  Longest: %s\n", longest.Key)
	}
	if shortest != nil {
		fmt.Printf("  Shortest: %s\n", shortest.Key)
	}
	return nil
}
