package domain

import "errors"

var (
	// ErrStorage wraps any failed store round-trip or transaction
	ErrStorage = errors.New("storage error")
	// ErrAlreadyExists is returned when adding a word that is already known
	ErrAlreadyExists = errors.New("word already exists")
	// ErrMalformedInput is returned when word input is not "word, translation"
	ErrMalformedInput = errors.New("malformed word input")
	// ErrInvalidFormat is returned when a word or translation fails its pattern
	ErrInvalidFormat = errors.New("invalid word format")
	// ErrWordNotFound is returned when the word to delete does not exist
	ErrWordNotFound = errors.New("word not found")
	// ErrNothingToLearn means the user has no visible words left
	ErrNothingToLearn = errors.New("nothing to learn")
	// ErrTranslationNotFound means the selected word has no translation
	ErrTranslationNotFound = errors.New("translation not found")
)
