package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", userID(c)),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID(c))

	name := c.Sender().FirstName
	if name == "" {
		name = c.Sender().Username
	}
	return c.Send(fmt.Sprintf(h.content.Messages.Start, name), h.mainMenuMarkup())
}

// handleHelp lists the bot commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(h.helpText())
}

func (h *Handler) helpText() string {
	var b strings.Builder
	b.WriteString(h.content.Messages.Help)
	for _, cmd := range h.content.Commands {
		fmt.Fprintf(&b, "\n/%s - %s", cmd.Command, cmd.Description)
	}
	return b.String()
}

// handleAbout handles /about command
func (h *Handler) handleAbout(c tele.Context) error {
	return c.Send(h.content.Messages.About)
}

// handleStats shows the user's progress
func (h *Handler) handleStats(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	progress, err := h.statsService.Progress(ctx, userID(c))
	if err != nil {
		return h.replyError(c, err)
	}

	return c.Send(fmt.Sprintf(h.content.Messages.Stats,
		progress.Available,
		progress.Mastered,
		progress.Removed,
		progress.Personal,
	), h.mainMenuMarkup())
}

// handleCancel returns the user to the action menu from any pending step
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(userID(c))

	if err := c.Send(h.content.Messages.Cancelled, removeKeyboard); err != nil {
		return err
	}
	return c.Send(h.content.Messages.ChooseAction, h.mainMenuMarkup())
}
