package testutil

import (
	"time"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a shared test word
func NewTestWord(id int64, word, translation string) domain.Word {
	return domain.Word{
		ID:          id,
		Text:        word,
		Translation: translation,
		CreatedAt:   time.Now(),
	}
}

// NewTestOwnedWord creates a personal test word of ownerID
func NewTestOwnedWord(id, ownerID int64, word, translation string) domain.Word {
	w := NewTestWord(id, word, translation)
	w.OwnerID = &ownerID
	return w
}

// NewTestCandidate wraps a word with the user's setting state
func NewTestCandidate(w domain.Word, correctAnswers int, hidden bool) domain.CandidateWord {
	return domain.CandidateWord{Word: w, CorrectAnswers: correctAnswers, Hidden: hidden}
}

// NewTestSetting creates a fresh user word setting
func NewTestSetting(id, userID, wordID int64, correctAnswers int) *domain.UserWordSetting {
	return &domain.UserWordSetting{
		ID:             id,
		UserID:         userID,
		WordID:         wordID,
		CorrectAnswers: correctAnswers,
		CreatedAt:      time.Now(),
	}
}
