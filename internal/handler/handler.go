// Package handler is the Telegram front-end over the learning services.
package handler

import (
	"context"
	"sync"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/middleware"
	"lingotutor/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds every service call made for one update
const requestTimeout = 90 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot                 *tele.Bot
	authService         *service.AuthService
	vocabularyService   *service.VocabularyService
	conversationService *service.ConversationService
	statsService        *service.StatsService
	logger              *zap.Logger

	// Session tokens per chat
	sessions   map[int64]string
	sessionMux sync.RWMutex

	// Chat states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Serializes callback handling per chat
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocabularyService *service.VocabularyService,
	conversationService *service.ConversationService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:                 bot,
		authService:         authService,
		vocabularyService:   vocabularyService,
		conversationService: conversationService,
		statsService:        statsService,
		logger:              logger,
		sessions:            make(map[int64]string),
		states:              make(map[int64]*domain.StateData),
		callbackLocks:       make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Open commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/signup", h.handleSignup)
	h.bot.Handle("/login", h.handleLogin)
	h.bot.Handle("/logout", h.handleLogout)

	// Everything else needs a session
	g := h.bot.Group()
	g.Use(middleware.Auth(h, h.authService, h.logger))

	g.Handle("/me", h.handleMe)
	g.Handle("/level", h.handleLevel)
	g.Handle("/add", h.handleAdd)
	g.Handle("/words", h.handleWords)
	g.Handle("/review", h.handleReview)
	g.Handle("/stats", h.handleStats)
	g.Handle("/today", h.handleToday)
	g.Handle("/week", h.handleWeek)
	g.Handle("/progress", h.handleProgress)
	g.Handle("/history", h.handleHistory)

	// Text messages
	g.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	g.Handle(&btnCancel, h.handleCancel)
	g.Handle(tele.OnCallback, h.handleCallback)
}

// Token returns the session token stored for the chat
func (h *Handler) Token(chatID int64) (string, bool) {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()

	token, ok := h.sessions[chatID]
	return token, ok
}

// SetToken stores the session token for the chat
func (h *Handler) SetToken(chatID int64, token string) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.sessions[chatID] = token
}

// Forget drops the chat's session and input state
func (h *Handler) Forget(chatID int64) {
	h.sessionMux.Lock()
	delete(h.sessions, chatID)
	h.sessionMux.Unlock()

	h.ResetState(chatID)
}

// GetState returns the chat's current state
func (h *Handler) GetState(chatID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[chatID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets the chat's state
func (h *Handler) SetState(chatID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[chatID] = state
}

// ResetState resets the chat to idle state
func (h *Handler) ResetState(chatID int64) {
	h.SetState(chatID, &domain.StateData{State: domain.StateIdle})
}

func (h *Handler) chatLock(chatID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[chatID] = lock
	}
	return lock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// replyError tells the chat what went wrong; unexpected failures are logged
func (h *Handler) replyError(c tele.Context, op string, err error) error {
	text, unexpected := errorText(err)
	if unexpected {
		h.logger.Error("Bot request failed",
			zap.String("op", op),
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
	}
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// Inline keyboard buttons
var (
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
)

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
