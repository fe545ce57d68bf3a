package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// UpsertCategory returns the category with the given title, creating it if needed
func (r *WordRepo) UpsertCategory(ctx context.Context, title string) (int64, bool, error) {
	id, created, err := upsertByKey(ctx, querierFromCtx(ctx, r.db), "categories",
		squirrel.Eq{"title": title},
		map[string]any{"title": title},
	)
	return id, created, mapError(err, "upsert category")
}

// UpsertSharedWord returns the shared word with the given text, creating it
// in categoryID if needed
func (r *WordRepo) UpsertSharedWord(ctx context.Context, text string, categoryID int64) (int64, bool, error) {
	key := squirrel.And{
		squirrel.Expr("LOWER(word) = LOWER(?)", text),
		squirrel.Eq{"user_id": nil},
	}
	id, created, err := upsertByKey(ctx, querierFromCtx(ctx, r.db), "words", key,
		map[string]any{"word": text, "category_id": categoryID},
	)
	return id, created, mapError(err, "upsert shared word")
}

// UpsertTranslation returns the translation of wordID, creating it if needed
func (r *WordRepo) UpsertTranslation(ctx context.Context, wordID int64, translation string) (int64, bool, error) {
	id, created, err := upsertByKey(ctx, querierFromCtx(ctx, r.db), "translations",
		squirrel.Eq{"word_id": wordID, "translation": translation},
		map[string]any{"word_id": wordID, "translation": translation},
	)
	return id, created, mapError(err, "upsert translation")
}
