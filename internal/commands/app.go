package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/biguard-dev/biguard/internal/backend"
	"github.com/biguard-dev/biguard/internal/config"
	"github.com/biguard-dev/biguard/internal/logger"
	"github.com/biguard-dev/biguard/internal/model"
	"github.com/biguard-dev/biguard/internal/provider"
	"github.com/biguard-dev/biguard/internal/store"
	"github.com/biguard-dev/biguard/internal/syncer"
)

// app wires the provider gateway, backend client, sync coordinator, and
// dashboard store from a loaded config. One app serves one user session.
type app struct {
	cfg     *config.Config
	store   *store.Store
	coord   *syncer.Coordinator
	backend *backend.Client
	sess    model.SessionContext
}

func newApp(configPath, userID string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New()
	gateway := provider.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.ClientID,
		cfg.Provider.Secret,
		cfg.Provider.Environment,
		log,
	)
	be := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, log)
	st := store.New()

	return &app{
		cfg:     cfg,
		store:   st,
		coord:   syncer.New(gateway, be, be, st, cfg.Sync.PageSize, log),
		backend: be,
		sess: model.SessionContext{
			UserID:     userID,
			Credential: os.Getenv("BIGUARD_TOKEN"),
		},
	}, nil
}

// addSessionFlags registers the flags shared by every command that
// talks to the provider or the backend.
func addSessionFlags(cmd *cobra.Command, configPath, userID *string) {
	cmd.Flags().StringVar(configPath, "config", "biguard.yaml", "path to the config file")
	cmd.Flags().StringVar(userID, "user", "default", "user identifier for this session")
}
