package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/logging"
	"github.com/healthsync/healthsync/internal/seed"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := config.NewDatabase(cfg, logger)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			if err := config.Migrate(db); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			logger.Info("database migration completed")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample users, measurements, meals and symptoms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := config.NewDatabase(cfg, logger)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			if err := seed.Run(cmd.Context(), db, logger); err != nil {
				return fmt.Errorf("seed database: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\nSample user IDs for testing:")
			for _, id := range seed.UserIDs() {
				fmt.Fprintf(out, "  %s\n", id)
			}
			logger.Debug("seed command finished", zap.Int("users", len(seed.UserIDs())))
			return nil
		},
	}
}
