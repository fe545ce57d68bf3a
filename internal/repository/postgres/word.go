package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wordtrainer/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// canonicalTranslation selects the first translation of w by id
const canonicalTranslation = `COALESCE((SELECT t.translation FROM translations t WHERE t.word_id = w.id ORDER BY t.id LIMIT 1), '') AS translation`

// WordRepo implements repository.WordRepository and repository.SeedRepository
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

// FindWord looks a word up by text, ignoring case.
// A nil ownerID looks up the shared word. Returns nil when there is none.
func (r *WordRepo) FindWord(ctx context.Context, text string, ownerID *int64) (*domain.Word, error) {
	builder := psql.
		Select("w.id", "w.word", "w.category_id", "w.user_id", canonicalTranslation, "w.created_at").
		From("words w").
		Where("LOWER(w.word) = LOWER(?)", text)

	if ownerID == nil {
		builder = builder.Where(squirrel.Eq{"w.user_id": nil})
	} else {
		builder = builder.Where(squirrel.Eq{"w.user_id": *ownerID})
	}

	query, args, err := builder.OrderBy("w.id").Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	var w domain.Word
	err = querierFromCtx(ctx, r.db).GetContext(ctx, &w, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "find word")
	}

	return &w, nil
}

// ListCandidateWords returns shared words and the user's own words
// together with the user's hidden flag and correct answer count
func (r *WordRepo) ListCandidateWords(ctx context.Context, userID int64) ([]domain.CandidateWord, error) {
	query := `
		SELECT w.id, w.word, w.category_id, w.user_id,
			COALESCE(t.translation, '') AS translation, w.created_at,
			COALESCE(s.correct_answers, 0) AS correct_answers,
			COALESCE(s.is_hidden, FALSE) AS is_hidden
		FROM words w
		LEFT JOIN user_word_settings s ON s.word_id = w.id AND s.user_id = $1
		LEFT JOIN LATERAL (
			SELECT translation FROM translations WHERE word_id = w.id ORDER BY id LIMIT 1
		) t ON TRUE
		WHERE w.user_id IS NULL OR w.user_id = $1
		ORDER BY w.id
	`

	var words []domain.CandidateWord
	if err := querierFromCtx(ctx, r.db).SelectContext(ctx, &words, query, userID); err != nil {
		return nil, mapError(err, "list candidate words")
	}

	return words, nil
}

// GetOrCreateSetting returns the user's setting for a word, creating it
// with zero correct answers on first use
func (r *WordRepo) GetOrCreateSetting(ctx context.Context, userID, wordID int64) (*domain.UserWordSetting, error) {
	q := querierFromCtx(ctx, r.db)

	key := squirrel.Eq{"user_id": userID, "word_id": wordID}
	id, _, err := upsertByKey(ctx, q, "user_word_settings", key, map[string]any{
		"user_id": userID,
		"word_id": wordID,
	})
	if err != nil {
		return nil, mapError(err, "upsert setting")
	}

	query := `
		SELECT id, user_id, word_id, correct_answers, is_hidden, is_deleted, last_shown_at, created_at
		FROM user_word_settings
		WHERE id = $1
	`
	var s domain.UserWordSetting
	if err := q.GetContext(ctx, &s, query, id); err != nil {
		return nil, mapError(err, "get setting")
	}

	return &s, nil
}

// AddWord saves a personal word, its translation and the owner's setting.
// Callers run it inside a transaction so the three inserts land together.
func (r *WordRepo) AddWord(ctx context.Context, nw domain.NewWord) (*domain.Word, error) {
	q := querierFromCtx(ctx, r.db)

	var inserted struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	query := `
		INSERT INTO words (word, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := q.GetContext(ctx, &inserted, query, nw.Text, nw.OwnerID); err != nil {
		return nil, mapError(err, "insert word")
	}

	query = `
		INSERT INTO translations (word_id, translation, user_id)
		VALUES ($1, $2, $3)
	`
	if _, err := q.ExecContext(ctx, query, inserted.ID, nw.Translation, nw.OwnerID); err != nil {
		return nil, mapError(err, "insert translation")
	}

	query = `
		INSERT INTO user_word_settings (user_id, word_id)
		VALUES ($1, $2)
	`
	if _, err := q.ExecContext(ctx, query, nw.OwnerID, inserted.ID); err != nil {
		return nil, mapError(err, "insert setting")
	}

	owner := nw.OwnerID
	return &domain.Word{
		ID:          inserted.ID,
		Text:        nw.Text,
		OwnerID:     &owner,
		Translation: nw.Translation,
		CreatedAt:   inserted.CreatedAt,
	}, nil
}

// RemoveWord deletes a word with its translations and settings
func (r *WordRepo) RemoveWord(ctx context.Context, wordID int64) error {
	q := querierFromCtx(ctx, r.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM translations WHERE word_id = $1`, wordID); err != nil {
		return mapError(err, "delete translations")
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM user_word_settings WHERE word_id = $1`, wordID); err != nil {
		return mapError(err, "delete settings")
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, wordID); err != nil {
		return mapError(err, "delete word")
	}

	return nil
}

// HideWord excludes a word from the user's quizzes
func (r *WordRepo) HideWord(ctx context.Context, userID, wordID int64) error {
	query := `
		INSERT INTO user_word_settings (user_id, word_id, is_hidden)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id, word_id)
		DO UPDATE SET is_hidden = TRUE
	`
	_, err := querierFromCtx(ctx, r.db).ExecContext(ctx, query, userID, wordID)
	return mapError(err, "hide word")
}

// UpdateSetting persists a setting after an answer.
// The counter never goes down and a hidden word never becomes visible again.
func (r *WordRepo) UpdateSetting(ctx context.Context, s *domain.UserWordSetting) error {
	query := `
		UPDATE user_word_settings
		SET correct_answers = GREATEST(correct_answers, $1),
			is_hidden = is_hidden OR $2,
			last_shown_at = $3
		WHERE id = $4
	`
	_, err := querierFromCtx(ctx, r.db).ExecContext(ctx, query, s.CorrectAnswers, s.IsHidden, s.LastShownAt, s.ID)
	return mapError(err, "update setting")
}
