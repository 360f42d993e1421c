package scope

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowboard/flowboard/internal/cli"
)

// ListCmd returns the scope list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scopes",
		RunE:  runList,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	scopes, err := cliInstance.App.ScopeService.GetAllScopes(ctx)
	if err != nil {
		if fmtErr := formatter.Error("SCOPE_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, s := range scopes {
			fmt.Printf("%d\n", s.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"scopes":  scopes,
		})
	}

	if len(scopes) == 0 {
		fmt.Println("No scopes found")
		return nil
	}

	fmt.Printf("Found %d scopes:\n\n", len(scopes))
	for _, s := range scopes {
		fmt.Printf("  [%d] %s (%s)\n", s.ID, s.Name, strings.Join(s.ProjectKeys, ", "))
	}

	return nil
}
