package scope

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/models"
)

// ShowCmd returns the scope show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a scope and its combined board",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (member keys only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	scope, err := cliInstance.App.ScopeService.GetScope(ctx, id)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("SCOPE_NOT_FOUND", err.Error(),
			"Use 'flowboard scope list' to see scope IDs"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if quietMode {
		for _, key := range scope.ProjectKeys {
			fmt.Printf("%s\n", key)
		}
		return nil
	}

	board, err := cliInstance.App.ScopeService.BoardForScopeID(ctx, id)
	if err != nil {
		if fmtErr := formatter.Error("SCOPE_BOARD_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeForError(err))
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"scope":   scope,
			"board":   board,
		})
	}

	fmt.Printf("Scope %d: %s\n", scope.ID, scope.Name)
	if scope.Description != "" {
		fmt.Printf("  %s\n", scope.Description)
	}
	fmt.Printf("  Projects: %s\n\n", strings.Join(scope.ProjectKeys, ", "))
	for _, column := range models.ColumnOrder() {
		fmt.Printf("%s (%d):\n", column, len(board[column]))
		for _, issue := range board[column] {
			fmt.Printf("  %s %s\n", issue.Key, issue.Summary)
		}
	}
	return nil
}
