package domain

import "time"

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateAwaitingAnswer    UserState = "awaiting_answer"
	StateWaitingNewWord    UserState = "waiting_new_word"
	StateWaitingDeleteWord UserState = "waiting_delete_word"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State     UserState
	Question  *Question // pending quiz question, set only in StateAwaitingAnswer
	UpdatedAt time.Time
}
