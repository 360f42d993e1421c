package sprint

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	sprintservice "github.com/flowboard/flowboard/internal/services/sprint"
)

// CreateCmd returns the sprint create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new sprint",
		Long: `Create a time-boxed sprint for a project.

Examples:
  flowboard sprint create --project=ALPHA --name="Sprint 12" --start=2026-09-01 --end=2026-09-15
`,
		RunE: runCreate,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")
	cmd.Flags().String("name", "", "Sprint name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Sprint description")
	cmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	if err := cmd.MarkFlagRequired("start"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("end", "", "End date, YYYY-MM-DD (required)")
	if err := cmd.MarkFlagRequired("end"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
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

	startDate, err := time.Parse("2006-01-02", startFlag)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_DATE", fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startFlag)); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	endDate, err := time.Parse("2006-01-02", endFlag)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_DATE", fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", endFlag)); fmtErr != nil {
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

	created, err := cliInstance.App.SprintService.CreateSprint(ctx, sprintservice.CreateSprintRequest{
		Name:        name,
		Description: description,
		ProjectKey:  projectKey,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		if fmtErr := formatter.Error("SPRINT_CREATE_ERROR", err.Error()); fmtErr != nil {
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

	fmt.Printf("Created sprint %d: %s (%s — %s)\n", created.ID, created.Name,
		created.StartDate.Format("2006-01-02"), created.EndDate.Format("2006-01-02"))
	return nil
}
