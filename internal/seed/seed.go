package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"wordtrainer/internal/repository"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
)

// Entry is one shared word of the seed document
type Entry struct {
	Category    string
	Word        string
	Translation string
}

// Result holds the counters of an import run
type Result struct {
	Processed    int
	Categories   int
	Words        int
	Translations int
	Skipped      int
	Errors       []string
}

// Importer loads shared categories, words and translations.
// Running it again with the same document creates nothing.
type Importer struct {
	txManager repository.TxManager
	seedRepo  repository.SeedRepository
	logger    *zap.Logger
}

// NewImporter creates a new seed importer
func NewImporter(txManager repository.TxManager, seedRepo repository.SeedRepository, logger *zap.Logger) *Importer {
	return &Importer{
		txManager: txManager,
		seedRepo:  seedRepo,
		logger:    logger,
	}
}

// ImportFile reads a .json or .xlsx seed document and imports it
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	var (
		entries []Entry
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		entries, err = ReadJSONFile(path)
	case ".xlsx":
		entries, err = ReadXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	return i.Import(ctx, entries)
}

// Import upserts entries in a single transaction.
// Entries with an empty word or translation are skipped.
func (i *Importer) Import(ctx context.Context, entries []Entry) (*Result, error) {
	result := &Result{Errors: make([]string, 0)}

	err := i.txManager.RunInTx(ctx, func(ctx context.Context) error {
		categories := make(map[string]int64)

		for n, e := range entries {
			result.Processed++

			word := service.NormalizeWord(e.Word)
			translation := service.NormalizeWord(e.Translation)
			title := strings.TrimSpace(e.Category)
			if word == "" || translation == "" || title == "" {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Entry %d: category, word and translation are required", n+1))
				continue
			}

			categoryID, ok := categories[title]
			if !ok {
				id, created, err := i.seedRepo.UpsertCategory(ctx, title)
				if err != nil {
					return fmt.Errorf("category %q: %w", title, err)
				}
				if created {
					result.Categories++
				}
				categories[title] = id
				categoryID = id
			}

			wordID, created, err := i.seedRepo.UpsertSharedWord(ctx, word, categoryID)
			if err != nil {
				return fmt.Errorf("word %q: %w", word, err)
			}
			if created {
				result.Words++
			}

			_, created, err = i.seedRepo.UpsertTranslation(ctx, wordID, translation)
			if err != nil {
				return fmt.Errorf("translation %q: %w", translation, err)
			}
			if created {
				result.Translations++
			}
		}

		return nil
	})
	if err != nil {
		i.logger.Error("Seed import failed", zap.Error(err))
		return nil, fmt.Errorf("import seed: %w", err)
	}

	i.logger.Info("Seed import completed",
		zap.Int("processed", result.Processed),
		zap.Int("categories_created", result.Categories),
		zap.Int("words_created", result.Words),
		zap.Int("translations_created", result.Translations),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}
