package handler

import (
	"fmt"
	"strings"

	"lingotutor/internal/domain"
	"lingotutor/internal/middleware"
	"lingotutor/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `👋 I am your language tutor.

/signup <name> <email> <password> [language]
/login <email> <password>
/logout
/me - your profile
/level <A1..C2> [language] - change level or language
/add - save a new word
/words [page] - your vocabulary
/review - words to practise
/stats, /today, /week, /progress
/history - recent conversations

Any other message is a chat with the tutor.`

// handleStart handles /start and /help
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID

	h.logger.Info("Chat started bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(chatID)
	return c.Send(helpText)
}

// handleSignup handles /signup <name> <email> <password> [language]
func (h *Handler) handleSignup(c tele.Context) error {
	args := c.Args()
	// the message carries a password
	defer h.deleteMessage(c)

	if len(args) < 3 {
		return c.Send("Usage: /signup <name> <email> <password> [language]")
	}

	in := service.SignupInput{
		Name:     args[0],
		Email:    args[1],
		Password: args[2],
	}
	if len(args) > 3 {
		in.TargetLanguage = strings.Join(args[3:], " ")
	}

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.authService.Signup(ctx, in)
	if err != nil {
		return h.replyError(c, "signup", err)
	}

	h.startSession(c.Chat().ID, session)
	return c.Send(fmt.Sprintf("✅ Welcome, %s!\n\n%s", session.User.Name, formatUser(session.User)))
}

// handleLogin handles /login <email> <password>
func (h *Handler) handleLogin(c tele.Context) error {
	args := c.Args()
	defer h.deleteMessage(c)

	if len(args) != 2 {
		return c.Send("Usage: /login <email> <password>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.authService.Login(ctx, args[0], args[1])
	if err != nil {
		return h.replyError(c, "login", err)
	}

	h.startSession(c.Chat().ID, session)
	return c.Send(fmt.Sprintf("✅ Logged in. 🔥 Streak: %d day(s)", session.User.CurrentStreak))
}

// handleLogout handles /logout
func (h *Handler) handleLogout(c tele.Context) error {
	h.Forget(c.Chat().ID)
	return c.Send("👋 Logged out.")
}

// handleMe handles /me
func (h *Handler) handleMe(c tele.Context) error {
	return c.Send(formatUser(middleware.CurrentUser(c)))
}

// handleLevel handles /level <A1..C2> [language]
func (h *Handler) handleLevel(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return c.Send(fmt.Sprintf("Usage: /level <%s> [language]", joinLevels()))
	}

	update := service.ProfileUpdate{Level: args[0]}
	if len(args) > 1 {
		update.TargetLanguage = strings.Join(args[1:], " ")
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.authService.UpdateProfile(ctx, middleware.CurrentUser(c), update)
	if err != nil {
		return h.replyError(c, "update profile", err)
	}
	return c.Send("✅ Profile updated\n\n" + formatUser(user))
}

func (h *Handler) startSession(chatID int64, session *service.Session) {
	h.SetToken(chatID, session.Token)
	h.ResetState(chatID)
	h.logger.Info("Chat session started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", session.User.ID),
	)
}

func (h *Handler) deleteMessage(c tele.Context) {
	if err := c.Delete(); err != nil {
		h.logger.Debug("Could not delete credentials message", zap.Error(err))
	}
}

func joinLevels() string {
	names := make([]string, 0, len(domain.Levels))
	for _, l := range domain.Levels {
		names = append(names, string(l))
	}
	return strings.Join(names, "|")
}
