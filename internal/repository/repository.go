package repository

import (
	"context"

	"wordtrainer/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUser(ctx context.Context, tgID int64, username string) (int64, error)
}

// WordRepository defines word data operations
type WordRepository interface {
	FindWord(ctx context.Context, text string, ownerID *int64) (*domain.Word, error)
	ListCandidateWords(ctx context.Context, userID int64) ([]domain.CandidateWord, error)
	GetOrCreateSetting(ctx context.Context, userID, wordID int64) (*domain.UserWordSetting, error)
	AddWord(ctx context.Context, w domain.NewWord) (*domain.Word, error)
	RemoveWord(ctx context.Context, wordID int64) error
	HideWord(ctx context.Context, userID, wordID int64) error
	UpdateSetting(ctx context.Context, s *domain.UserWordSetting) error
}

// SeedRepository defines the natural-key upserts used by the seed import
type SeedRepository interface {
	UpsertCategory(ctx context.Context, title string) (id int64, created bool, err error)
	UpsertSharedWord(ctx context.Context, text string, categoryID int64) (id int64, created bool, err error)
	UpsertTranslation(ctx context.Context, wordID int64, translation string) (id int64, created bool, err error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
