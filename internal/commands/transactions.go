package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/aggregate"
)

func newTransactionsCommand() *cobra.Command {
	var configPath string
	var userID string
	var query string
	var category string

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List synced transactions, optionally filtered",
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

			var preds []aggregate.Predicate
			if query != "" {
				preds = append(preds, aggregate.MatchQuery(query))
			}
			if category != "" {
				preds = append(preds, aggregate.MatchCategory(category))
			}
			txs := aggregate.Filter(result.Transactions, preds...)

			out := cmd.OutOrStdout()
			if len(txs) == 0 {
				fmt.Fprintln(out, "No matching transactions.")
				return nil
			}
			for _, tx := range txs {
				pending := ""
				if tx.Pending {
					pending = "  pending"
				}
				fmt.Fprintf(out, "%s  %-30s %-22s %12s%s\n",
					tx.Date.Format("2006-01-02"), tx.Name, tx.Category, money(tx.Amount), pending)
			}
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	cmd.Flags().StringVar(&query, "query", "", "substring match on name, merchant, or category")
	cmd.Flags().StringVar(&category, "category", "", "exact category filter")
	return cmd
}
