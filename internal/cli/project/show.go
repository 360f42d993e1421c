package project

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show a single project",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (key only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	project, err := cliInstance.App.ProjectService.GetProject(ctx, args[0])
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("PROJECT_NOT_FOUND", err.Error(),
			"Use 'flowboard project list' to see available projects"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		fmt.Printf("%s\n", project.Key)
		return nil
	}

	if jsonOutput {
		return formatter.Success(project)
	}

	fmt.Printf("%s: %s\n", project.Key, project.Name)
	if project.Description != "" {
		fmt.Printf("  %s\n", project.Description)
	}
	if project.Lead != "" {
		fmt.Printf("  Lead: %s\n", project.Lead)
	}
	fmt.Printf("  Issues: %d, WIP limit: %d\n", project.IssueCount, project.WIPLimit)
	return nil
}
