package handler

import (
	"fmt"
	"strconv"
	"strings"

	"lingotutor/internal/domain"
	"lingotutor/internal/middleware"
	"lingotutor/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	wordsPageSize = 8
	reviewSize    = 5
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	chatID := c.Chat().ID
	text := strings.TrimSpace(c.Text())

	// Unknown commands
	if strings.HasPrefix(text, "/") {
		return c.Send("Unknown command. See /help")
	}

	state := h.GetState(chatID)

	switch state.State {
	case domain.StateWaitingWord:
		h.SetState(chatID, &domain.StateData{
			State:       domain.StateWaitingMeaning,
			CurrentWord: text,
		})
		return c.Send(fmt.Sprintf("What does \"%s\" mean?", text), cancelMarkup())

	case domain.StateWaitingMeaning:
		return h.saveWord(c, state.CurrentWord, text)

	default:
		return h.chat(c, text)
	}
}

// handleAdd starts the word → meaning flow
func (h *Handler) handleAdd(c tele.Context) error {
	h.SetState(c.Chat().ID, &domain.StateData{State: domain.StateWaitingWord})
	return c.Send("Send me the word", cancelMarkup())
}

func (h *Handler) saveWord(c tele.Context, word, meaning string) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := requestContext()
	defer cancel()

	entry, err := h.vocabularyService.Add(ctx, user, service.NewVocabulary{
		Word:    word,
		Meaning: meaning,
	})
	if err != nil {
		return h.replyError(c, "add word", err)
	}

	h.logger.Info("Word saved",
		zap.Int64("user_id", user.ID),
		zap.Int64("entry_id", entry.ID),
	)

	// ready for the next word
	h.SetState(c.Chat().ID, &domain.StateData{State: domain.StateWaitingWord})
	return c.Send(fmt.Sprintf("✅ Saved: %s — %s\n\nSend the next word or press Cancel", entry.Word, entry.Meaning), cancelMarkup())
}

func (h *Handler) chat(c tele.Context, text string) error {
	if text == "" {
		return nil
	}
	_ = c.Notify(tele.Typing)

	ctx, cancel := requestContext()
	defer cancel()

	result, err := h.conversationService.Chat(ctx, middleware.CurrentUser(c), text)
	if err != nil {
		return h.replyError(c, "chat", err)
	}
	return c.Send(formatReply(result.Conversation))
}

// handleWords handles /words [page]
func (h *Handler) handleWords(c tele.Context) error {
	page := 1
	if args := c.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return c.Send("Usage: /words [page]")
		}
		page = n
	}
	return h.showWords(c, page)
}

// showWords renders one page of the vocabulary, editing the message when called from a button
func (h *Handler) showWords(c tele.Context, page int) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := requestContext()
	defer cancel()

	// one extra row tells whether a next page exists
	entries, err := h.vocabularyService.List(ctx, user.ID, (page-1)*wordsPageSize, wordsPageSize+1, nil)
	if err != nil {
		return h.replyError(c, "list words", err)
	}

	if len(entries) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "No words on this page"})
		}
		if page > 1 {
			return c.Send("No words on this page")
		}
		return c.Send("You have no saved words yet. Use /add")
	}

	hasNext := len(entries) > wordsPageSize
	if hasNext {
		entries = entries[:wordsPageSize]
	}

	text := formatWordsPage(entries, page)
	markup := &tele.ReplyMarkup{}
	rows := entryRows(markup, entries, page)

	navRow := tele.Row{}
	if page > 1 {
		navRow = append(navRow, markup.Data("⬅️", actionPage, strconv.Itoa(page-1)))
	}
	if hasNext {
		navRow = append(navRow, markup.Data("➡️", actionPage, strconv.Itoa(page+1)))
	}
	if len(navRow) > 0 {
		rows = append(rows, navRow)
	}
	markup.Inline(rows...)

	return h.render(c, text, markup)
}

// handleReview handles /review
func (h *Handler) handleReview(c tele.Context) error {
	user := middleware.CurrentUser(c)

	ctx, cancel := requestContext()
	defer cancel()

	entries, err := h.vocabularyService.DueForReview(ctx, user.ID, reviewSize)
	if err != nil {
		return h.replyError(c, "review", err)
	}
	if len(entries) == 0 {
		return c.Send("🎉 Nothing to review, every word is mastered")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(entryRows(markup, entries, 0)...)
	return c.Send(formatReview(entries), markup)
}

// entryRows builds a toggle and a delete button per entry.
// page 0 means the buttons do not re-render a list.
func entryRows(markup *tele.ReplyMarkup, entries []domain.VocabularyEntry, page int) []tele.Row {
	rows := make([]tele.Row, 0, len(entries)+1)
	for _, e := range entries {
		id := strconv.FormatInt(e.ID, 10)
		p := strconv.Itoa(page)

		toggle := markup.Data("✅ "+e.Word, actionMaster, id, p)
		if e.Mastered {
			toggle = markup.Data("↩️ "+e.Word, actionUnmaster, id, p)
		}
		rows = append(rows, markup.Row(toggle, markup.Data("🗑", actionDelete, id, p)))
	}
	return rows
}

// render edits the message for a callback and sends a new one otherwise
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}
