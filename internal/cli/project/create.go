package project

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	projectservice "github.com/flowboard/flowboard/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project identified by a short uppercase key.

Examples:
  # Simple project
  flowboard project create --key=PROJ --name="Payments"

  # With an explicit WIP limit and lead
  flowboard project create --key=PROJ --name="Payments" --wip-limit=3 --lead=alice

  # JSON output for agents
  flowboard project create --key=PROJ --name="Payments" --json
`,
		RunE: runCreate,
	}

	cmd.Flags().String("key", "", "Project key, e.g. PROJ (required)")
	if err := cmd.MarkFlagRequired("key"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("lead", "", "Project lead")
	cmd.Flags().Int("wip-limit", 0, "Work-in-progress limit (defaults from config)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (key only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	key, _ := cmd.Flags().GetString("key")
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	lead, _ := cmd.Flags().GetString("lead")
	wipLimit, _ := cmd.Flags().GetInt("wip-limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	created, err := cliInstance.App.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
		Key:         key,
		Name:        name,
		Description: description,
		Lead:        lead,
		WIPLimit:    wipLimit,
	})
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("PROJECT_CREATE_ERROR", err.Error(),
			"Use 'flowboard project list' to check existing keys"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%s\n", created.Key)
		return nil
	}

	if jsonOutput {
		return formatter.Success(created)
	}

	fmt.Printf("Created project %s (%s), WIP limit %d\n", created.Key, created.Name, created.WIPLimit)
	return nil
}
