package testutil

import (
	"context"

	"wordtrainer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, tgID int64, username string) (int64, error) {
	args := m.Called(ctx, tgID, username)
	return args.Get(0).(int64), args.Error(1)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) FindWord(ctx context.Context, text string, ownerID *int64) (*domain.Word, error) {
	args := m.Called(ctx, text, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) ListCandidateWords(ctx context.Context, userID int64) ([]domain.CandidateWord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateWord), args.Error(1)
}

func (m *MockWordRepository) GetOrCreateSetting(ctx context.Context, userID, wordID int64) (*domain.UserWordSetting, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWordSetting), args.Error(1)
}

func (m *MockWordRepository) AddWord(ctx context.Context, w domain.NewWord) (*domain.Word, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) RemoveWord(ctx context.Context, wordID int64) error {
	args := m.Called(ctx, wordID)
	return args.Error(0)
}

func (m *MockWordRepository) HideWord(ctx context.Context, userID, wordID int64) error {
	args := m.Called(ctx, userID, wordID)
	return args.Error(0)
}

func (m *MockWordRepository) UpdateSetting(ctx context.Context, s *domain.UserWordSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockSeedRepository is a mock for SeedRepository
type MockSeedRepository struct {
	mock.Mock
}

func (m *MockSeedRepository) UpsertCategory(ctx context.Context, title string) (int64, bool, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockSeedRepository) UpsertSharedWord(ctx context.Context, text string, categoryID int64) (int64, bool, error) {
	args := m.Called(ctx, text, categoryID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockSeedRepository) UpsertTranslation(ctx context.Context, wordID int64, translation string) (int64, bool, error) {
	args := m.Called(ctx, wordID, translation)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// MockTxManager runs fn directly and records the call.
// Return a non-nil error from On("RunInTx") to simulate a failed commit.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	return args.Error(0)
}
