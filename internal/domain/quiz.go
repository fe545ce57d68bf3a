package domain

// Question is a pending multiple-choice quiz question
type Question struct {
	ID      string
	UserID  int64
	Word    Word
	Setting UserWordSetting
	Options []string
}

// Prompt returns the text the user has to translate
func (q *Question) Prompt() string {
	return q.Word.Translation
}

// AnswerResult is the outcome of answering a question
type AnswerResult struct {
	Correct        bool
	Answer         string // the correct word text
	Translation    string
	CorrectAnswers int
	Mastered       bool // word reached the threshold with this answer
}
