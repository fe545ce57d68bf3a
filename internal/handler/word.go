package handler

import (
	"errors"
	"fmt"
	"strings"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	uid := userID(c)
	text := strings.TrimSpace(c.Text())

	// Unregistered commands never count as an answer or a word
	if strings.HasPrefix(text, "/") {
		return c.Send(h.content.Messages.ChooseAction, h.mainMenuMarkup())
	}

	state := h.GetState(uid)

	switch state.State {
	case domain.StateAwaitingAnswer:
		// Reply keyboard buttons send their label verbatim
		return h.handleAnswer(c, state, c.Text())

	case domain.StateWaitingNewWord:
		return h.handleNewWord(c, text)

	case domain.StateWaitingDeleteWord:
		return h.handleDeleteWord(c, text)

	default:
		return c.Send(h.content.Messages.ChooseAction, h.mainMenuMarkup())
	}
}

// handleAddWordButton asks for a "word, translation" pair
func (h *Handler) handleAddWordButton(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	h.SetState(userID(c), &domain.StateData{State: domain.StateWaitingNewWord})
	return c.Send(h.content.Messages.AddUserWord, removeKeyboard)
}

// handleDeleteWordButton asks for the word to remove
func (h *Handler) handleDeleteWordButton(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	h.SetState(userID(c), &domain.StateData{State: domain.StateWaitingDeleteWord})
	return c.Send(h.content.Messages.DeleteUserWord, removeKeyboard)
}

func (h *Handler) handleNewWord(c tele.Context, text string) error {
	uid := userID(c)

	ctx, cancel := h.requestContext()
	defer cancel()

	word, err := h.wordService.AddWord(ctx, uid, text)
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		// Stay in the waiting state so the user can try again
		return c.Send(h.content.Errors.AddWordValue)
	case errors.Is(err, domain.ErrInvalidFormat):
		return c.Send(h.content.Errors.InvalidFormat)
	}

	h.ResetState(uid)
	if err != nil {
		return h.replyError(c, err)
	}

	return c.Send(fmt.Sprintf(h.content.Messages.WordAdded, word.Text, word.Translation), h.mainMenuMarkup())
}

func (h *Handler) handleDeleteWord(c tele.Context, text string) error {
	uid := userID(c)

	ctx, cancel := h.requestContext()
	defer cancel()

	result, err := h.wordService.DeleteWord(ctx, uid, text)
	h.ResetState(uid)
	if err != nil {
		return h.replyError(c, err)
	}

	msg := h.content.Messages.WordHidden
	if result.Outcome == domain.DeleteOutcomeDeleted {
		msg = h.content.Messages.WordDeleted
	}
	return c.Send(fmt.Sprintf(msg, result.Word.Text), h.mainMenuMarkup())
}

// replyError answers with the text for a known error and a generic notice otherwise
func (h *Handler) replyError(c tele.Context, err error) error {
	var msg string
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		msg = h.content.Errors.WordExists
	case errors.Is(err, domain.ErrWordNotFound):
		msg = h.content.Errors.WordNotFound
	case errors.Is(err, domain.ErrNothingToLearn):
		msg = h.content.Errors.LearnAllWords
	case errors.Is(err, domain.ErrTranslationNotFound):
		msg = h.content.Errors.NotFoundTranslatedWord
	case errors.Is(err, domain.ErrMalformedInput):
		msg = h.content.Errors.AddWordValue
	case errors.Is(err, domain.ErrInvalidFormat):
		msg = h.content.Errors.InvalidFormat
	default:
		h.logger.Error("Request failed",
			zap.Int64("user_id", userID(c)),
			zap.Error(err),
		)
		msg = h.content.Errors.Internal
	}

	return c.Send(msg, h.mainMenuMarkup())
}
