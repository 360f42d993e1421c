package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli/board"
	"github.com/flowboard/flowboard/internal/cli/issue"
	"github.com/flowboard/flowboard/internal/cli/metrics"
	"github.com/flowboard/flowboard/internal/cli/project"
	"github.com/flowboard/flowboard/internal/cli/scope"
	"github.com/flowboard/flowboard/internal/cli/sprint"
	"github.com/flowboard/flowboard/internal/cli/standup"
	"github.com/flowboard/flowboard/internal/cli/user"
)

var rootCmd = &cobra.Command{
	Use:   "flowboard",
	Short: "Flowboard - workflow tracking and flow metrics for the terminal",
	Long:  `Flowboard tracks issues across projects on a three-column kanban workflow and reports cycle time and throughput metrics.`,
}

func init() {
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(issue.IssueCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(metrics.MetricsCmd())
	rootCmd.AddCommand(scope.ScopeCmd())
	rootCmd.AddCommand(standup.StandupCmd())
	rootCmd.AddCommand(sprint.SprintCmd())
	rootCmd.AddCommand(user.UserCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
