package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCommand() *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Link a bank institution",
	}
	linkCmd.AddCommand(newLinkStartCommand())
	linkCmd.AddCommand(newLinkCompleteCommand())
	return linkCmd
}

func newLinkStartCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Begin a link session and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}

			sess, err := a.coord.StartLink(cmd.Context(), a.sess)
			if err != nil {
				return fmt.Errorf("starting link session: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Link session token: %s\n", sess.SessionToken)
			fmt.Fprintln(out, "Complete the institution login, then run:")
			fmt.Fprintln(out, "  biguard link complete <public-token>")
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}

func newLinkCompleteCommand() *cobra.Command {
	var configPath string
	var userID string

	cmd := &cobra.Command{
		Use:   "complete <public-token>",
		Short: "Exchange a public token and run the first sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, userID)
			if err != nil {
				return err
			}

			result, err := a.coord.CompleteLink(cmd.Context(), a.sess, args[0])
			if err != nil {
				return fmt.Errorf("completing link: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Linked. Synced %d accounts and %d transactions.\n",
				len(result.Accounts), len(result.Transactions))
			return nil
		},
	}

	addSessionFlags(cmd, &configPath, &userID)
	return cmd
}
