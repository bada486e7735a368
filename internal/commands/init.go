package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/config"
)

func newInitCommand() *cobra.Command {
	var clientID string
	var secret string
	var environment string
	var backendURL string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a biguard.yaml config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, clientID, secret, environment, backendURL)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "provider client ID (required)")
	_ = cmd.MarkFlagRequired("client-id")
	cmd.Flags().StringVar(&secret, "secret", "", "provider secret (required)")
	_ = cmd.MarkFlagRequired("secret")
	cmd.Flags().StringVar(&environment, "environment", "sandbox", "provider environment (sandbox or production)")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "aggregation backend base URL")

	return cmd
}

func runInit(cmd *cobra.Command, dir, clientID, secret, environment, backendURL string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	path := filepath.Join(dir, "biguard.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := config.Default(clientID, secret)
	cfg.Provider.Environment = environment
	if environment == "production" {
		cfg.Provider.BaseURL = "https://production.plaid.com"
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized BiGuard config at %s (%s)\n", path, environment)
	return nil
}
