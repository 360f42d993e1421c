package scope

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	scopeservice "github.com/flowboard/flowboard/internal/services/scope"
)

// CreateCmd returns the scope create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new scope",
		Long: `Create a named scope over one or more projects.

Examples:
  flowboard scope create --name="Platform" --projects=ALPHA,BETA
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Scope name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Scope description")
	cmd.Flags().String("projects", "", "Comma-separated project keys, in display order")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	projectsFlag, _ := cmd.Flags().GetString("projects")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	var projectKeys []string
	if projectsFlag != "" {
		for _, key := range strings.Split(projectsFlag, ",") {
			projectKeys = append(projectKeys, strings.TrimSpace(key))
		}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	created, err := cliInstance.App.ScopeService.CreateScope(ctx, scopeservice.CreateScopeRequest{
		Name:        name,
		Description: description,
		ProjectKeys: projectKeys,
	})
	if err != nil {
		if fmtErr := formatter.Error("SCOPE_CREATE_ERROR", err.Error()); fmtErr != nil {
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

	fmt.Printf("Created scope %d: %s (%s)\n", created.ID, created.Name, strings.Join(created.ProjectKeys, ", "))
	return nil
}
