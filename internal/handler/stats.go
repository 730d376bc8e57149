package handler

import (
	"time"

	"lingotutor/internal/middleware"

	tele "gopkg.in/telebot.v3"
)

const historySize = 10

// handleStats handles /stats
func (h *Handler) handleStats(c tele.Context) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := requestContext()
	defer cancel()

	overview, err := h.statsService.Overview(ctx, user)
	if err != nil {
		return h.replyError(c, "overview", err)
	}
	vocab, err := h.vocabularyService.Stats(ctx, user.ID)
	if err != nil {
		return h.replyError(c, "vocabulary stats", err)
	}
	return c.Send(formatOverview(overview, vocab))
}

// handleToday handles /today
func (h *Handler) handleToday(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	today, err := h.statsService.Today(ctx, middleware.CurrentUser(c))
	if err != nil {
		return h.replyError(c, "today", err)
	}
	return c.Send(formatToday(today))
}

// handleWeek handles /week
func (h *Handler) handleWeek(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	days, err := h.statsService.Weekly(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.replyError(c, "weekly", err)
	}
	return c.Send(formatWeek(days, time.Now()))
}

// handleProgress handles /progress
func (h *Handler) handleProgress(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	progress, err := h.statsService.Progress(ctx, middleware.CurrentUser(c))
	if err != nil {
		return h.replyError(c, "progress", err)
	}
	return c.Send(formatProgress(progress))
}

// handleHistory handles /history
func (h *Handler) handleHistory(c tele.Context) error {
	ctx, cancel := requestContext()
	defer cancel()

	convs, err := h.conversationService.History(ctx, middleware.CurrentUser(c).ID, historySize, true)
	if err != nil {
		return h.replyError(c, "history", err)
	}
	if len(convs) == 0 {
		return c.Send("No conversations yet. Just send me a message!")
	}
	return c.Send(formatHistory(convs))
}
