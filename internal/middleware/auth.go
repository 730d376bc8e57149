// Package middleware holds the bot's telebot middleware.
package middleware

import (
	"context"
	"errors"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserKey is where the resolved user is stored on the telebot context
const UserKey = "user"

const resolveTimeout = 10 * time.Second

// Sessions looks up and drops the token a chat logged in with
type Sessions interface {
	Token(chatID int64) (string, bool)
	Forget(chatID int64)
}

// Auth creates authentication middleware.
// The chat's token is resolved to a user; stale sessions are dropped.
func Auth(sessions Sessions, authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chatID := c.Chat().ID

			token, ok := sessions.Token(chatID)
			if !ok {
				return deny(c, "🔒 Please /login or /signup first")
			}

			ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
			defer cancel()

			user, err := authService.Resolve(ctx, "Bearer "+token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUserNotFound):
				sessions.Forget(chatID)
				logger.Info("Dropped stale session", zap.Int64("chat_id", chatID), zap.Error(err))
				return deny(c, "🔒 Your session has expired. Please /login again")
			default:
				logger.Error("Failed to resolve session", zap.Int64("chat_id", chatID), zap.Error(err))
				return deny(c, "Something went wrong. Try again later.")
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Auth, or nil
func CurrentUser(c tele.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}

func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
