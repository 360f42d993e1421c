package project

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/models"
)

// AssignCmd returns the project assign subcommand
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a user to a project",
		RunE:  runAssign,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")
	cmd.Flags().Int("user", 0, "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("role", models.RoleMember, "Role: lead, member, or observer")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	userID, _ := cmd.Flags().GetInt("user")
	role, _ := cmd.Flags().GetString("role")
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

	if err := cliInstance.App.ProjectService.AssignUser(ctx, projectKey, userID, role); err != nil {
		if fmtErr := formatter.Error("ASSIGN_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"project": projectKey,
			"user":    userID,
			"role":    role,
		})
	}

	fmt.Printf("Assigned user %d to %s as %s\n", userID, projectKey, role)
	return nil
}
