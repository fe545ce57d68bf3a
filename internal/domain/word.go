package domain

import "time"

// Word is a lexical item. OwnerID is nil for shared words.
type Word struct {
	ID          int64     `db:"id"`
	Text        string    `db:"word"`
	CategoryID  *int64    `db:"category_id"`
	OwnerID     *int64    `db:"user_id"`
	Translation string    `db:"translation"` // canonical translation, lowest id
	CreatedAt   time.Time `db:"created_at"`
}

// IsShared reports whether the word belongs to no user
func (w Word) IsShared() bool {
	return w.OwnerID == nil
}

// IsOwnedBy reports whether the word is a personal word of userID
func (w Word) IsOwnedBy(userID int64) bool {
	return w.OwnerID != nil && *w.OwnerID == userID
}

// CandidateWord is a word together with the user's setting state for it
type CandidateWord struct {
	Word
	CorrectAnswers int  `db:"correct_answers"`
	Hidden         bool `db:"is_hidden"`
}

// NewWord is the input for inserting a personal word
type NewWord struct {
	Text        string
	Translation string
	OwnerID     int64
}

// UserWordSetting tracks a user's progress on a word
type UserWordSetting struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	WordID         int64      `db:"word_id"`
	CorrectAnswers int        `db:"correct_answers"`
	IsHidden       bool       `db:"is_hidden"`
	IsDeleted      bool       `db:"is_deleted"`
	LastShownAt    *time.Time `db:"last_shown_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

// RecordCorrectAnswer counts a correct answer and hides the word once
// correct answers reach threshold. It returns true only when this call
// hid the word.
func (s *UserWordSetting) RecordCorrectAnswer(threshold int, now time.Time) bool {
	s.CorrectAnswers++
	s.LastShownAt = &now

	if s.IsHidden || s.CorrectAnswers < threshold {
		return false
	}
	s.IsHidden = true
	return true
}

// DeleteOutcome tells what a delete request did
type DeleteOutcome int

const (
	// DeleteOutcomeDeleted means a personal word was removed with its translations
	DeleteOutcomeDeleted DeleteOutcome = iota + 1
	// DeleteOutcomeHidden means a shared word was hidden for the user only
	DeleteOutcomeHidden
)

// DeleteResult is the word a delete request matched and what happened to it
type DeleteResult struct {
	Word    Word
	Outcome DeleteOutcome
}

// Progress summarises a user's dictionary
type Progress struct {
	Available int
	Mastered  int
	Removed   int
	Personal  int
}
