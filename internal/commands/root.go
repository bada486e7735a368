package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "biguard",
		Short:   "Bank linking and spending dashboard",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLinkCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newDashboardCommand())
	rootCmd.AddCommand(newBudgetsCommand())
	rootCmd.AddCommand(newAnomalyCommand())

	return rootCmd
}
