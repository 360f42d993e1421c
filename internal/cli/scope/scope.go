// Package scope implements the "flowboard scope" command group.
package scope

import (
	"github.com/spf13/cobra"
)

// ScopeCmd returns the scope parent command
func ScopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Manage cross-project scopes",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(AddProjectCmd())
	cmd.AddCommand(RemoveProjectsCmd())

	return cmd
}
