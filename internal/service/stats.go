package service

import (
	"context"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StatsService summarises user progress
type StatsService struct {
	wordRepo  repository.WordRepository
	threshold int
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(wordRepo repository.WordRepository, threshold int, logger *zap.Logger) *StatsService {
	return &StatsService{
		wordRepo:  wordRepo,
		threshold: threshold,
		logger:    logger,
	}
}

// Progress counts the user's available, mastered and removed words.
// Hidden words below the threshold were removed by the user.
func (s *StatsService) Progress(ctx context.Context, userID int64) (*domain.Progress, error) {
	candidates, err := s.wordRepo.ListCandidateWords(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load progress", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list candidate words: %w", err)
	}

	return &domain.Progress{
		Available: lo.CountBy(candidates, func(c domain.CandidateWord) bool {
			return IsVisible(c, userID)
		}),
		Mastered: lo.CountBy(candidates, func(c domain.CandidateWord) bool {
			return c.Hidden && c.CorrectAnswers >= s.threshold
		}),
		Removed: lo.CountBy(candidates, func(c domain.CandidateWord) bool {
			return c.Hidden && c.CorrectAnswers < s.threshold
		}),
		Personal: lo.CountBy(candidates, func(c domain.CandidateWord) bool {
			return c.IsOwnedBy(userID)
		}),
	}, nil
}
