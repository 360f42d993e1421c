package scope

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// RemoveProjectsCmd returns the scope remove-projects subcommand
func RemoveProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-projects <scope-id> <project-key>...",
		Short: "Remove projects from a scope",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runRemoveProjects,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runRemoveProjects(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ID", fmt.Sprintf("invalid scope ID %q", args[0])); fmtErr != nil {
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

	updated, err := cliInstance.App.ScopeService.RemoveProjectsFromScope(ctx, id, args[1:])
	if err != nil {
		if fmtErr := formatter.Error("SCOPE_REMOVE_ERROR", err.Error()); fmtErr != nil {
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

	fmt.Printf("Scope %d now covers: %s\n", updated.ID, strings.Join(updated.ProjectKeys, ", "))
	return nil
}
