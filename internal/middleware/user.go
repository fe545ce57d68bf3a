package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserIDKey is the context key holding the internal user id
const UserIDKey = "user_id"

const registerTimeout = 5 * time.Second

// UserRegistrar maps a Telegram user to an internal user id
type UserRegistrar interface {
	EnsureUser(ctx context.Context, tgID int64, username string) (int64, error)
}

// RegisterUser creates the user record on first contact and stores the
// internal user id in the context under UserIDKey
func RegisterUser(users UserRegistrar, genericError string, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), registerTimeout)
			defer cancel()

			id, err := users.EnsureUser(ctx, sender.ID, sender.Username)
			if err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Int64("tg_id", sender.ID),
					zap.Error(err),
				)
				return c.Send(genericError)
			}

			c.Set(UserIDKey, id)
			return next(c)
		}
	}
}
