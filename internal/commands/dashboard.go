package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Sync and render the spending dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// Each resource loads independently. A failed load leaves
			// its card degraded and the rest of the view intact.
			if _, err := a.coord.Sync(ctx, a.sess); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: sync failed: %v\n", err)
			}
			if err := a.coord.LoadBudgets(ctx, a.sess); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: loading budgets: %v\n", err)
			}
			if err := a.coord.LoadAnomalySummary(ctx, a.sess); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: loading anomaly summary: %v\n", err)
			}
			if err := a.coord.LoadStats(ctx, a.sess); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: loading stats: %v\n", err)
			}

			renderDashboard(cmd.OutOrStdout(), a.store.Snapshot(), time.Now())
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}
