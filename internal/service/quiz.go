package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// OptionsCount is the number of answer options in a question
const OptionsCount = 4

// QuizService builds quiz questions and checks answers
type QuizService struct {
	txManager repository.TxManager
	wordRepo  repository.WordRepository
	policy    *VisibilityPolicy
	threshold int
	logger    *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand

	now func() time.Time
}

// NewQuizService creates a new quiz service.
// A word is hidden after threshold correct answers.
func NewQuizService(
	txManager repository.TxManager,
	wordRepo repository.WordRepository,
	policy *VisibilityPolicy,
	threshold int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		txManager: txManager,
		wordRepo:  wordRepo,
		policy:    policy,
		threshold: threshold,
		logger:    logger,
		rnd:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
	}
}

// SetRand replaces the random source, used by tests for reproducible questions
func (s *QuizService) SetRand(r *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd = r
}

// StartQuiz picks a random visible word and builds a question for it
func (s *QuizService) StartQuiz(ctx context.Context, userID int64) (*domain.Question, error) {
	visible, err := s.policy.VisibleWords(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := visible[s.intN(len(visible))]
	if target.Translation == "" {
		return nil, fmt.Errorf("word %d: %w", target.ID, domain.ErrTranslationNotFound)
	}

	var setting *domain.UserWordSetting
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		setting, err = s.wordRepo.GetOrCreateSetting(ctx, userID, target.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get word setting: %w", err)
	}

	q := &domain.Question{
		ID:      uuid.NewString(),
		UserID:  userID,
		Word:    target,
		Setting: *setting,
		Options: s.buildOptions(target, visible),
	}

	s.logger.Debug("Question created",
		zap.Int64("user_id", userID),
		zap.String("question_id", q.ID),
		zap.String("word", target.Text),
		zap.Int("options", len(q.Options)),
	)

	return q, nil
}

// buildOptions returns the target text plus up to three distinct distractors
// in random order
func (s *QuizService) buildOptions(target domain.Word, visible []domain.Word) []string {
	pool := lo.Uniq(lo.FilterMap(visible, func(w domain.Word, _ int) (string, bool) {
		return w.Text, w.ID != target.ID && w.Text != target.Text
	}))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > OptionsCount-1 {
		pool = pool[:OptionsCount-1]
	}

	pos := s.rnd.IntN(len(pool) + 1)
	options := make([]string, 0, len(pool)+1)
	options = append(options, pool[:pos]...)
	options = append(options, target.Text)
	options = append(options, pool[pos:]...)

	return options
}

func (s *QuizService) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// SubmitAnswer checks answer against the question's word.
// A correct answer increments the user's counter and hides the word once it
// reaches the threshold. A wrong answer changes nothing.
func (s *QuizService) SubmitAnswer(ctx context.Context, q *domain.Question, answer string) (*domain.AnswerResult, error) {
	result := &domain.AnswerResult{
		Correct:        answer == q.Word.Text,
		Answer:         q.Word.Text,
		Translation:    q.Word.Translation,
		CorrectAnswers: q.Setting.CorrectAnswers,
	}
	if !result.Correct {
		return result, nil
	}

	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		setting, err := s.wordRepo.GetOrCreateSetting(ctx, q.UserID, q.Word.ID)
		if err != nil {
			return err
		}

		result.Mastered = setting.RecordCorrectAnswer(s.threshold, s.now())
		result.CorrectAnswers = setting.CorrectAnswers

		return s.wordRepo.UpdateSetting(ctx, setting)
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	if result.Mastered {
		s.logger.Info("Word mastered",
			zap.Int64("user_id", q.UserID),
			zap.String("question_id", q.ID),
			zap.String("word", q.Word.Text),
		)
	}

	return result, nil
}
