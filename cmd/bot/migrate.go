package main

import (
	"fmt"

	"wordtrainer/internal/config"
	"wordtrainer/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadDatabase()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := connectDatabase(cmd.Context(), cfg.DSN(), logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		return postgres.Migrate(db.DB, cfg.MigrationsPath, logger)
	},
}
