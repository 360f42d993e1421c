// Package user implements the "flowboard user" command group.
package user

import (
	"github.com/spf13/cobra"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
