package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles callback queries that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", userID(c)),
	)

	action := callback.Unique
	if action == "" {
		action = data
	}

	switch action {
	case h.btnTestKnowledge.Unique, h.btnNext.Unique:
		return h.handleTestKnowledge(c)
	case h.btnAddWord.Unique:
		return h.handleAddWordButton(c)
	case h.btnDeleteWord.Unique:
		return h.handleDeleteWordButton(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
