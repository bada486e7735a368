package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh accounts and transactions from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}

			result, err := a.coord.Sync(cmd.Context(), a.sess)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d accounts and %d transactions.\n",
				len(result.Accounts), len(result.Transactions))
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}
