package main

import (
	"context"
	"fmt"

	"wordtrainer/internal/config"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import shared categories, words and translations from a JSON or XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadDatabase()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := seedFile
		if path == "" {
			path = cfg.SeedFile
		}
		if path == "" {
			return fmt.Errorf("seed file is required: pass --file or set SEED_FILE")
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		result, err := importOnce(cmd.Context(), cfg, path, logger)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"processed %d entries: %d categories, %d words, %d translations created, %d skipped\n",
			result.Processed, result.Categories, result.Words, result.Translations, result.Skipped,
		)
		for _, msg := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "path to the seed file (.json or .xlsx)")
}

// importOnce migrates the database and imports the seed file at path
func importOnce(ctx context.Context, cfg *config.Config, path string, logger *zap.Logger) (*seed.Result, error) {
	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db.DB, cfg.MigrationsPath, logger); err != nil {
		return nil, err
	}

	importer := seed.NewImporter(postgres.NewTxManager(db), postgres.NewWordRepo(db), logger)
	return importer.ImportFile(ctx, path)
}
