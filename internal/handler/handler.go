package handler

import (
	"context"
	"sync"
	"time"

	"wordtrainer/internal/config"
	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 15 * time.Second

// QuizService builds questions and checks answers
type QuizService interface {
	StartQuiz(ctx context.Context, userID int64) (*domain.Question, error)
	SubmitAnswer(ctx context.Context, q *domain.Question, answer string) (*domain.AnswerResult, error)
}

// WordService adds and removes the user's words
type WordService interface {
	AddWord(ctx context.Context, userID int64, raw string) (*domain.Word, error)
	DeleteWord(ctx context.Context, userID int64, raw string) (*domain.DeleteResult, error)
}

// StatsService summarises the user's progress
type StatsService interface {
	Progress(ctx context.Context, userID int64) (*domain.Progress, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	quizService  QuizService
	wordService  WordService
	statsService StatsService
	content      *config.Content
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	btnTestKnowledge tele.Btn
	btnNext          tele.Btn
	btnAddWord       tele.Btn
	btnDeleteWord    tele.Btn

	now func() time.Time
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	quizService QuizService,
	wordService WordService,
	statsService StatsService,
	content *config.Content,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		quizService:  quizService,
		wordService:  wordService,
		statsService: statsService,
		content:      content,
		logger:       logger,
		states:       make(map[int64]*domain.StateData),

		btnTestKnowledge: tele.Btn{Unique: "test_knowledge", Text: content.Buttons.TestKnowledge},
		btnNext:          tele.Btn{Unique: "next", Text: content.Buttons.Next},
		btnAddWord:       tele.Btn{Unique: "add_word", Text: content.Buttons.AddWord},
		btnDeleteWord:    tele.Btn{Unique: "delete_word", Text: content.Buttons.DeleteWord},

		now: time.Now,
	}
}

// RegisterHandlers registers all bot handlers and publishes the command menu
func (h *Handler) RegisterHandlers() error {
	// Commands
	for cmd, fn := range h.commandHandlers() {
		h.bot.Handle(cmd, fn)
	}

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&h.btnTestKnowledge, h.handleTestKnowledge)
	h.bot.Handle(&h.btnNext, h.handleTestKnowledge)
	h.bot.Handle(&h.btnAddWord, h.handleAddWordButton)
	h.bot.Handle(&h.btnDeleteWord, h.handleDeleteWordButton)

	// Generic callback handler for buttons whose unique did not come through
	h.bot.Handle(tele.OnCallback, h.handleCallback)

	commands := make([]tele.Command, 0, len(h.content.Commands))
	for _, cmd := range h.content.Commands {
		commands = append(commands, tele.Command{Text: cmd.Command, Description: cmd.Description})
	}
	return h.bot.SetCommands(commands)
}

// commandHandlers maps slash commands to their handlers
func (h *Handler) commandHandlers() map[string]tele.HandlerFunc {
	return map[string]tele.HandlerFunc{
		"/start":          h.handleStart,
		"/help":           h.handleHelp,
		"/about":          h.handleAbout,
		"/stats":          h.handleStats,
		"/cancel":         h.handleCancel,
		"/test_knowledge": h.handleTestKnowledge,
		"/next":           h.handleTestKnowledge,
		"/add_word":       h.handleAddWordButton,
		"/delete_word":    h.handleDeleteWordButton,
	}
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state, replacing any pending one
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	state.UpdatedAt = h.now()

	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	delete(h.states, userID)
}

// SweepStaleStates drops states untouched for longer than maxAge
// and returns how many were dropped
func (h *Handler) SweepStaleStates(maxAge time.Duration) int {
	cutoff := h.now().Add(-maxAge)

	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	swept := 0
	for userID, state := range h.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(h.states, userID)
			swept++
		}
	}
	return swept
}

// requestContext bounds the store calls of one update
func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// userID returns the internal user id stored by the user middleware
func userID(c tele.Context) int64 {
	id, _ := c.Get(middleware.UserIDKey).(int64)
	return id
}

// mainMenuMarkup returns the action menu keyboard
func (h *Handler) mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(h.btnTestKnowledge),
		menu.Row(h.btnAddWord, h.btnDeleteWord),
	)
	return menu
}

// continueMarkup returns the keyboard shown after an answer
func (h *Handler) continueMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(h.btnNext),
		menu.Row(h.btnAddWord, h.btnDeleteWord),
	)
	return menu
}

// optionsMarkup returns a one-time reply keyboard with two options per row
func optionsMarkup(options []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}

	btns := make([]tele.Btn, 0, len(options))
	for _, opt := range options {
		btns = append(btns, markup.Text(opt))
	}
	markup.Reply(markup.Split(2, btns)...)

	return markup
}

var removeKeyboard = &tele.ReplyMarkup{RemoveKeyboard: true}
