// Package board implements the "flowboard board" command: a rendered
// kanban view of a project's issues.
package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
	"github.com/flowboard/flowboard/internal/cli/styles"
	"github.com/flowboard/flowboard/internal/models"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a project's kanban board",
		RunE:  runBoard,
	}

	cmd.Flags().String("project", "", "Project key (uses FLOWBOARD_PROJECT if not specified)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (counts only)")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
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

	board := cliInstance.App.BoardService.Build(issues)

	if quietMode {
		for _, column := range models.ColumnOrder() {
			fmt.Printf("%s\t%d\n", column, len(board[column]))
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": projectKey,
			"board":   board,
		})
	}

	fmt.Println(renderBoard(projectKey, board))
	return nil
}

// renderBoard lays the three columns out side by side
func renderBoard(projectKey string, board models.Board) string {
	columns := make([]string, 0, len(models.ColumnOrder()))
	for _, column := range models.ColumnOrder() {
		var b strings.Builder
		b.WriteString(styles.ColumnHeaderStyle.Render(fmt.Sprintf("%s (%d)", column, len(board[column]))))
		b.WriteString("\n")
		for _, issue := range board[column] {
			b.WriteString(styles.CardStyle.Render(fmt.Sprintf("%s %s", issue.Key, truncate(issue.Summary, 22))))
			b.WriteString("\n")
		}
		columns = append(columns, styles.ColumnStyle.Render(b.String()))
	}

	title := styles.TitleStyle.Render("Board: " + projectKey)
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
