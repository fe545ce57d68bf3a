package handler

import (
	"errors"
	"fmt"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleTestKnowledge starts a new question, replacing any pending one
func (h *Handler) handleTestKnowledge(c tele.Context) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return h.sendQuestion(c)
}

func (h *Handler) sendQuestion(c tele.Context) error {
	uid := userID(c)

	ctx, cancel := h.requestContext()
	defer cancel()

	q, err := h.quizService.StartQuiz(ctx, uid)
	if err != nil {
		h.ResetState(uid)
		if errors.Is(err, domain.ErrNothingToLearn) {
			return c.Send(h.content.Errors.LearnAllWords, h.mainMenuMarkup())
		}
		return h.replyError(c, err)
	}

	h.SetState(uid, &domain.StateData{
		State:    domain.StateAwaitingAnswer,
		Question: q,
	})

	return c.Send(fmt.Sprintf(h.content.Messages.QuizPrompt, q.Prompt()), optionsMarkup(q.Options))
}

// handleAnswer checks the text against the pending question
func (h *Handler) handleAnswer(c tele.Context, state *domain.StateData, answer string) error {
	uid := userID(c)

	if state.Question == nil {
		h.ResetState(uid)
		return c.Send(h.content.Errors.NoActiveQuestion, h.mainMenuMarkup())
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	result, err := h.quizService.SubmitAnswer(ctx, state.Question, answer)
	h.ResetState(uid)
	if err != nil {
		return h.replyError(c, err)
	}

	h.logger.Debug("Answer checked",
		zap.Int64("user_id", uid),
		zap.String("question_id", state.Question.ID),
		zap.Bool("correct", result.Correct),
	)

	if err := c.Send(h.feedbackText(result), removeKeyboard); err != nil {
		return err
	}
	if result.Mastered {
		if err := c.Send(fmt.Sprintf(h.content.Messages.LearnedWord, result.Answer)); err != nil {
			return err
		}
	}
	return c.Send(h.content.Messages.Continue, h.continueMarkup())
}

func (h *Handler) feedbackText(result *domain.AnswerResult) string {
	if result.Correct {
		return "✅ " + fmt.Sprintf(h.content.Messages.Correct, result.Answer, result.Translation)
	}
	return "❌ " + fmt.Sprintf(h.content.Messages.Wrong, result.Answer)
}
