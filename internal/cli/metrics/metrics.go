// Package metrics implements the "flowboard metrics" command group.
package metrics

import (
	"github.com/spf13/cobra"
)

// MetricsCmd returns the metrics parent command
func MetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Flow metrics over resolved issues",
	}

	cmd.AddCommand(CycleTimeCmd())
	cmd.AddCommand(ThroughputCmd())

	return cmd
}
