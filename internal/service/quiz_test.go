package service

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testThreshold = 3

func newTestQuizService(t *testing.T, candidates []domain.CandidateWord) (*QuizService, *testutil.MockWordRepository, *testutil.MockTxManager) {
	t.Helper()

	mockRepo := new(testutil.MockWordRepository)
	mockTx := new(testutil.MockTxManager)
	if candidates != nil {
		mockRepo.On("ListCandidateWords", mock.Anything, int64(1)).Return(candidates, nil)
	}

	svc := NewQuizService(mockTx, mockRepo, NewVisibilityPolicy(mockRepo), testThreshold, testutil.NewTestLogger())
	svc.SetRand(rand.New(rand.NewPCG(1, 2)))
	return svc, mockRepo, mockTx
}

func sharedCandidates(texts ...string) []domain.CandidateWord {
	out := make([]domain.CandidateWord, 0, len(texts))
	for i, text := range texts {
		out = append(out, testutil.NewTestCandidate(testutil.NewTestWord(int64(i+1), text, "Перевод "+text), 0, false))
	}
	return out
}

func TestQuizService_StartQuiz_Options(t *testing.T) {
	tests := []struct {
		name            string
		candidates      []domain.CandidateWord
		expectedOptions int
	}{
		{
			name:            "many visible words",
			candidates:      sharedCandidates("Cat", "Dog", "Fox", "Owl", "Bear", "Wolf"),
			expectedOptions: 4,
		},
		{
			name:            "exactly four visible words",
			candidates:      sharedCandidates("Cat", "Dog", "Fox", "Owl"),
			expectedOptions: 4,
		},
		{
			name:            "two visible words",
			candidates:      sharedCandidates("Cat", "Dog"),
			expectedOptions: 2,
		},
		{
			name:            "single visible word",
			candidates:      sharedCandidates("Cat"),
			expectedOptions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockTx := newTestQuizService(t, tt.candidates)
			mockTx.On("RunInTx", mock.Anything).Return(nil)
			mockRepo.On("GetOrCreateSetting", mock.Anything, int64(1), mock.AnythingOfType("int64")).
				Return(testutil.NewTestSetting(10, 1, 1, 0), nil)

			for i := 0; i < 20; i++ {
				q, err := svc.StartQuiz(context.Background(), 1)
				require.NoError(t, err)

				assert.Len(t, q.Options, tt.expectedOptions)
				assert.ElementsMatch(t, uniqueStrings(q.Options), q.Options, "options must be distinct")
				assert.Equal(t, 1, countOf(q.Options, q.Word.Text), "target appears exactly once")
				assert.Equal(t, "Перевод "+q.Word.Text, q.Prompt())
				assert.NotEmpty(t, q.ID)
				assert.Equal(t, int64(1), q.UserID)
			}
		})
	}
}

func TestQuizService_StartQuiz_TargetPositionVaries(t *testing.T) {
	svc, mockRepo, mockTx := newTestQuizService(t, sharedCandidates("Cat", "Dog", "Fox", "Owl"))
	mockTx.On("RunInTx", mock.Anything).Return(nil)
	mockRepo.On("GetOrCreateSetting", mock.Anything, int64(1), mock.AnythingOfType("int64")).
		Return(testutil.NewTestSetting(10, 1, 1, 0), nil)

	positions := map[int]bool{}
	for i := 0; i < 200; i++ {
		q, err := svc.StartQuiz(context.Background(), 1)
		require.NoError(t, err)
		for pos, opt := range q.Options {
			if opt == q.Word.Text {
				positions[pos] = true
			}
		}
	}

	assert.Len(t, positions, 4)
}

func TestQuizService_StartQuiz_NothingToLearn(t *testing.T) {
	hidden := []domain.CandidateWord{
		testutil.NewTestCandidate(testutil.NewTestWord(1, "Cat", "Кошка"), 3, true),
	}
	svc, mockRepo, mockTx := newTestQuizService(t, hidden)

	q, err := svc.StartQuiz(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNothingToLearn)
	assert.Nil(t, q)
	mockRepo.AssertNotCalled(t, "GetOrCreateSetting", mock.Anything, mock.Anything, mock.Anything)
	mockTx.AssertNotCalled(t, "RunInTx", mock.Anything)
}

func TestQuizService_StartQuiz_MissingTranslation(t *testing.T) {
	svc, _, _ := newTestQuizService(t, []domain.CandidateWord{
		testutil.NewTestCandidate(testutil.NewTestWord(1, "Cat", ""), 0, false),
	})

	q, err := svc.StartQuiz(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
	assert.Nil(t, q)
}

func TestQuizService_StartQuiz_SettingError(t *testing.T) {
	svc, mockRepo, mockTx := newTestQuizService(t, sharedCandidates("Cat", "Dog"))
	mockTx.On("RunInTx", mock.Anything).Return(nil)
	mockRepo.On("GetOrCreateSetting", mock.Anything, int64(1), mock.AnythingOfType("int64")).
		Return(nil, domain.ErrStorage)

	q, err := svc.StartQuiz(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, q)
}

func newTestQuestion(correctAnswers int) *domain.Question {
	return &domain.Question{
		ID:      "q-1",
		UserID:  1,
		Word:    testutil.NewTestWord(7, "Cat", "Кошка"),
		Setting: *testutil.NewTestSetting(10, 1, 7, correctAnswers),
		Options: []string{"Dog", "Cat", "Fox", "Owl"},
	}
}

func TestQuizService_SubmitAnswer(t *testing.T) {
	tests := []struct {
		name             string
		answer           string
		storedCorrect    int
		storedHidden     bool
		expectedCorrect  bool
		expectedCount    int
		expectedMastered bool
	}{
		{
			name:            "correct answer below threshold",
			answer:          "Cat",
			storedCorrect:   0,
			expectedCorrect: true,
			expectedCount:   1,
		},
		{
			name:             "correct answer reaches threshold",
			answer:           "Cat",
			storedCorrect:    testThreshold - 1,
			expectedCorrect:  true,
			expectedCount:    testThreshold,
			expectedMastered: true,
		},
		{
			name:            "correct answer on already hidden word",
			answer:          "Cat",
			storedCorrect:   testThreshold,
			storedHidden:    true,
			expectedCorrect: true,
			expectedCount:   testThreshold + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockTx := newTestQuizService(t, nil)
			now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
			svc.now = func() time.Time { return now }

			stored := testutil.NewTestSetting(10, 1, 7, tt.storedCorrect)
			stored.IsHidden = tt.storedHidden

			mockTx.On("RunInTx", mock.Anything).Return(nil)
			mockRepo.On("GetOrCreateSetting", mock.Anything, int64(1), int64(7)).Return(stored, nil)
			mockRepo.On("UpdateSetting", mock.Anything, mock.MatchedBy(func(s *domain.UserWordSetting) bool {
				return s.CorrectAnswers == tt.expectedCount &&
					s.IsHidden == (tt.storedHidden || tt.expectedMastered) &&
					s.LastShownAt != nil && s.LastShownAt.Equal(now)
			})).Return(nil)

			result, err := svc.SubmitAnswer(context.Background(), newTestQuestion(tt.storedCorrect), tt.answer)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCorrect, result.Correct)
			assert.Equal(t, tt.expectedCount, result.CorrectAnswers)
			assert.Equal(t, tt.expectedMastered, result.Mastered)
			assert.Equal(t, "Cat", result.Answer)
			assert.Equal(t, "Кошка", result.Translation)

			mockRepo.AssertExpectations(t)
			mockTx.AssertExpectations(t)
		})
	}
}

func TestQuizService_SubmitAnswer_Wrong(t *testing.T) {
	for _, answer := range []string{"Dog", "cat", "CAT", " Cat", ""} {
		t.Run(answer, func(t *testing.T) {
			svc, mockRepo, mockTx := newTestQuizService(t, nil)

			result, err := svc.SubmitAnswer(context.Background(), newTestQuestion(2), answer)

			require.NoError(t, err)
			assert.False(t, result.Correct)
			assert.False(t, result.Mastered)
			assert.Equal(t, 2, result.CorrectAnswers)
			assert.Equal(t, "Cat", result.Answer)
			mockRepo.AssertNotCalled(t, "UpdateSetting", mock.Anything, mock.Anything)
			mockTx.AssertNotCalled(t, "RunInTx", mock.Anything)
		})
	}
}

func TestQuizService_SubmitAnswer_StorageError(t *testing.T) {
	svc, mockRepo, mockTx := newTestQuizService(t, nil)

	mockTx.On("RunInTx", mock.Anything).Return(nil)
	mockRepo.On("GetOrCreateSetting", mock.Anything, int64(1), int64(7)).Return(testutil.NewTestSetting(10, 1, 7, 0), nil)
	mockRepo.On("UpdateSetting", mock.Anything, mock.Anything).Return(domain.ErrStorage)

	result, err := svc.SubmitAnswer(context.Background(), newTestQuestion(0), "Cat")

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, result)
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func countOf(in []string, s string) int {
	n := 0
	for _, v := range in {
		if v == s {
			n++
		}
	}
	return n
}
