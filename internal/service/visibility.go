package service

import (
	"context"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/samber/lo"
)

// VisibilityPolicy decides which words a user may be quizzed on
type VisibilityPolicy struct {
	wordRepo repository.WordRepository
}

// NewVisibilityPolicy creates a new visibility policy
func NewVisibilityPolicy(wordRepo repository.WordRepository) *VisibilityPolicy {
	return &VisibilityPolicy{wordRepo: wordRepo}
}

// VisibleWords returns the shared words and the user's own words that the
// user has not hidden. It returns domain.ErrNothingToLearn when none are left.
func (p *VisibilityPolicy) VisibleWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	candidates, err := p.wordRepo.ListCandidateWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list candidate words: %w", err)
	}

	visible := lo.FilterMap(candidates, func(c domain.CandidateWord, _ int) (domain.Word, bool) {
		return c.Word, IsVisible(c, userID)
	})
	if len(visible) == 0 {
		return nil, domain.ErrNothingToLearn
	}

	return visible, nil
}

// IsVisible reports whether a candidate word may be shown to userID
func IsVisible(c domain.CandidateWord, userID int64) bool {
	if c.Hidden {
		return false
	}
	return c.IsShared() || c.IsOwnedBy(userID)
}
