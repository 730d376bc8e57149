package handler

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"lingotutor/internal/domain"
	"lingotutor/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Callback actions carried as the button's unique part
const (
	actionMaster   = "master"
	actionUnmaster = "unmaster"
	actionDelete   = "delete"
	actionPage     = "words_page"
)

var errBadCallback = errors.New("malformed callback data")

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback returns the action and its arguments.
// When telebot did not split the unique part off, it is taken from the data.
func parseCallback(unique, data string) (string, []string) {
	data = cleanCallbackData(data)
	if unique == "" {
		parts := strings.Split(data, "|")
		return parts[0], parts[1:]
	}
	if data == "" {
		return unique, nil
	}
	return unique, strings.Split(data, "|")
}

// entryTarget reads "<entry id>|<page>" callback arguments
func entryTarget(args []string) (int64, int, error) {
	if len(args) != 2 {
		return 0, 0, errBadCallback
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, errBadCallback
	}
	page, err := strconv.Atoi(args[1])
	if err != nil || page < 0 {
		return 0, 0, errBadCallback
	}
	return id, page, nil
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	// already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("chat_id", c.Chat().ID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", c.Chat().ID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL dynamic callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	action, args := parseCallback(callback.Unique, callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("action", action),
		zap.Strings("args", args),
		zap.Int64("chat_id", c.Chat().ID),
	)

	lock := h.chatLock(c.Chat().ID)
	lock.Lock()
	defer lock.Unlock()

	switch action {
	case actionMaster, actionUnmaster:
		return h.handleMastery(c, args, action == actionMaster)
	case actionDelete:
		return h.handleDelete(c, args)
	case actionPage:
		page, err := strconv.Atoi(strings.Join(args, ""))
		if err != nil || page < 1 {
			return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
		}
		return h.showWords(c, page)
	case btnCancel.Unique:
		return h.handleCancel(c)
	}

	h.logger.Warn("Unhandled callback", zap.String("action", action))
	return c.Respond()
}

func (h *Handler) handleMastery(c tele.Context, args []string, mastered bool) error {
	id, page, err := entryTarget(args)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid button"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	entry, err := h.vocabularyService.SetMastery(ctx, middleware.CurrentUser(c).ID, id, mastered)
	if err != nil {
		return h.replyError(c, "set mastery", err)
	}

	if page > 0 {
		return h.showWords(c, page)
	}
	text := "↩️ " + entry.Word + " is back in review"
	if entry.Mastered {
		text = "✅ " + entry.Word + " mastered"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

func (h *Handler) handleDelete(c tele.Context, args []string) error {
	id, page, err := entryTarget(args)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid button"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.vocabularyService.Remove(ctx, middleware.CurrentUser(c).ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Already deleted"})
		}
		return h.replyError(c, "delete word", err)
	}

	if page > 0 {
		return h.showWords(c, page)
	}
	return c.Respond(&tele.CallbackResponse{Text: "🗑 Deleted"})
}

// handleCancel cancels the current input flow
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Chat().ID)

	text := "Cancelled. Send any message to chat with the tutor."
	if err := c.Edit(text); err != nil {
		if handleErr := h.handleEditError(err, c); handleErr == nil {
			return nil
		}
		return c.Send(text)
	}
	return c.Respond()
}
