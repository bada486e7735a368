package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/model"
)

func newBudgetsCommand() *cobra.Command {
	budgetsCmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category budgets",
	}
	budgetsCmd.AddCommand(newBudgetsListCommand())
	budgetsCmd.AddCommand(newBudgetsSetCommand())
	budgetsCmd.AddCommand(newBudgetsDeleteCommand())
	return budgetsCmd
}

func newBudgetsListCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}

			budgets, err := a.backend.ListBudgets(cmd.Context(), a.sess)
			if err != nil {
				return fmt.Errorf("listing budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				fmt.Fprintln(out, "No budgets set.")
				return nil
			}
			for _, b := range budgets {
				fmt.Fprintf(out, "%-22s %12s %s\n", b.Category, money(b.Amount), b.Period)
			}
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}

func newBudgetsSetCommand() *cobra.Command {
	var configPath string
	var userID string
	var period string

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Create or update the budget for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			budget := model.Budget{
				Category: args[0],
				Amount:   amount,
				Period:   model.BudgetPeriod(period),
			}

			// Category is the natural key: update in place when a
			// budget for it already exists.
			existing, err := a.backend.ListBudgets(ctx, a.sess)
			if err != nil {
				return fmt.Errorf("listing budgets: %w", err)
			}
			for _, b := range existing {
				if b.Category == budget.Category {
					budget.ID = b.ID
					break
				}
			}

			var saved model.Budget
			if budget.ID != "" {
				saved, err = a.backend.UpdateBudget(ctx, a.sess, budget)
			} else {
				saved, err = a.backend.CreateBudget(ctx, a.sess, budget)
			}
			if err != nil {
				return fmt.Errorf("saving budget: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Budget set: %s %s %s\n", saved.Category, money(saved.Amount), saved.Period)
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	cmd.Flags().StringVar(&period, "period", string(model.PeriodMonthly), "budget period (monthly, weekly, yearly)")
	return cmd
}

func newBudgetsDeleteCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			budgets, err := a.backend.ListBudgets(ctx, a.sess)
			if err != nil {
				return fmt.Errorf("listing budgets: %w", err)
			}
			for _, b := range budgets {
				if b.Category == args[0] {
					if err := a.backend.DeleteBudget(ctx, a.sess, b.ID); err != nil {
						return fmt.Errorf("deleting budget: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget for %s\n", b.Category)
					return nil
				}
			}
			return fmt.Errorf("no budget for category %q", args[0])
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}
