package main

import (
	"context"
	"fmt"

	"event_rsvp/internal/config"
	"event_rsvp/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds what every command needs once configuration is loaded
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rsvp-server",
		Short:         "Event invitation RSVP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newHashPasswordCmd(),
	)
	return rootCmd
}

func loadApp() (*app, error) {
	envLoaded := config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := config.ConnectDB(ctx, a.cfg.DB, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
