package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/anomaly"
)

func newAnomalyCommand() *cobra.Command {
	anomalyCmd := &cobra.Command{
		Use:   "anomaly",
		Short: "Inspect flagged transactions",
	}
	anomalyCmd.AddCommand(newAnomalyShowCommand())
	anomalyCmd.AddCommand(newAnomalyClearCommand())
	return anomalyCmd
}

func newAnomalyShowCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the anomaly summary and alert feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			result, err := a.coord.Sync(ctx, a.sess)
			if err != nil {
				return err
			}
			summary := anomaly.Summarize(result.Transactions)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Risk level: %s (%d flagged: %d high, %d medium, %d low)\n",
				summary.RiskLevel, summary.TotalCount,
				summary.BySeverity.High, summary.BySeverity.Medium, summary.BySeverity.Low)
			for _, tx := range summary.Transactions {
				fmt.Fprintf(out, "  %s  %-8s %12s  %s\n",
					tx.Date.Format("2006-01-02"), tx.Fraud.Severity, money(tx.Amount), tx.Name)
			}
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}

func newAnomalyClearCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Unflag all flagged transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}

			summary, err := anomaly.Clear(cmd.Context(), a.backend, a.sess)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared. %d transactions remain flagged.\n", summary.TotalCount)
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}
