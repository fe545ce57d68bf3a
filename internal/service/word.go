package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordService handles adding and removing words
type WordService struct {
	txManager     repository.TxManager
	wordRepo      repository.WordRepository
	sourcePattern *regexp.Regexp
	targetPattern *regexp.Regexp
	logger        *zap.Logger
}

// NewWordService creates a new word service.
// The patterns must match the whole word and the whole translation.
func NewWordService(
	txManager repository.TxManager,
	wordRepo repository.WordRepository,
	sourcePattern, targetPattern *regexp.Regexp,
	logger *zap.Logger,
) *WordService {
	return &WordService{
		txManager:     txManager,
		wordRepo:      wordRepo,
		sourcePattern: sourcePattern,
		targetPattern: targetPattern,
		logger:        logger,
	}
}

// ParseWordInput splits "word, translation" and title-cases both parts
func ParseWordInput(raw string) (word, translation string, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return "", "", domain.ErrMalformedInput
	}

	word = NormalizeWord(parts[0])
	translation = NormalizeWord(parts[1])
	if word == "" || translation == "" {
		return "", "", domain.ErrMalformedInput
	}

	return word, translation, nil
}

// NormalizeWord trims s and capitalises each word in it
func NormalizeWord(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// AddWord adds a personal word for the user from "word, translation" input
func (s *WordService) AddWord(ctx context.Context, userID int64, raw string) (*domain.Word, error) {
	text, translation, err := ParseWordInput(raw)
	if err != nil {
		return nil, err
	}

	if !s.sourcePattern.MatchString(text) || !s.targetPattern.MatchString(translation) {
		return nil, domain.ErrInvalidFormat
	}

	var added *domain.Word
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, owner := range []*int64{&userID, nil} {
			existing, err := s.wordRepo.FindWord(ctx, text, owner)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrAlreadyExists
			}
		}

		w, err := s.wordRepo.AddWord(ctx, domain.NewWord{
			Text:        text,
			Translation: translation,
			OwnerID:     userID,
		})
		if err != nil {
			return err
		}
		added = w
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add word %q: %w", text, err)
	}

	s.logger.Info("Word added",
		zap.Int64("user_id", userID),
		zap.String("word", text),
		zap.String("translation", translation),
	)

	return added, nil
}

// DeleteWord removes the user's own word, or hides a shared word for the user only
func (s *WordService) DeleteWord(ctx context.Context, userID int64, raw string) (*domain.DeleteResult, error) {
	text := NormalizeWord(raw)
	if text == "" {
		return nil, domain.ErrWordNotFound
	}

	var result domain.DeleteResult
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		owned, err := s.wordRepo.FindWord(ctx, text, &userID)
		if err != nil {
			return err
		}
		if owned != nil {
			result = domain.DeleteResult{Word: *owned, Outcome: domain.DeleteOutcomeDeleted}
			return s.wordRepo.RemoveWord(ctx, owned.ID)
		}

		shared, err := s.wordRepo.FindWord(ctx, text, nil)
		if err != nil {
			return err
		}
		if shared != nil {
			result = domain.DeleteResult{Word: *shared, Outcome: domain.DeleteOutcomeHidden}
			return s.wordRepo.HideWord(ctx, userID, shared.ID)
		}

		return domain.ErrWordNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("delete word %q: %w", text, err)
	}

	s.logger.Info("Word removed",
		zap.Int64("user_id", userID),
		zap.String("word", result.Word.Text),
		zap.Int("outcome", int(result.Outcome)),
	)

	return &result, nil
}
