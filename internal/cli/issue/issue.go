// Package issue implements the "flowboard issue" command group.
package issue

import (
	"github.com/spf13/cobra"
)

// IssueCmd returns the issue parent command
func IssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage issues",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(UpdateCmd())

	return cmd
}
