// Package sprint implements the "flowboard sprint" command group.
package sprint

import (
	"github.com/spf13/cobra"
)

// SprintCmd returns the sprint parent command
func SprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
		Long:  `Create sprints and manage their issue membership.`,
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(AddIssueCmd())
	cmd.AddCommand(IssuesCmd())

	return cmd
}
