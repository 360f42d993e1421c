// Package standup implements the "flowboard standup" command group for
// running per-project standup sessions from the command line.
package standup

import (
	"github.com/spf13/cobra"
)

// StandupCmd returns the standup parent command
func StandupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standup",
		Short: "Run standup sessions",
		Long:  `Start and end standup sessions for a project, and review what changed since the last one.`,
	}

	cmd.AddCommand(StartCmd())
	cmd.AddCommand(EndCmd())
	cmd.AddCommand(ChangesCmd())

	return cmd
}
