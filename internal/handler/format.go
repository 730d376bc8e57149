package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lingotutor/internal/domain"
)

// errorText turns a service error into a chat reply and reports whether it was unexpected
func errorText(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "❌ Incorrect email or password", false
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "❌ This email is already registered. Try /login", false
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUserNotFound):
		return "🔒 Your session has expired. Please /login again", false
	case errors.Is(err, domain.ErrUnauthenticated):
		return "🔒 Please /login or /signup first", false
	case errors.Is(err, domain.ErrNotFound):
		return "That word no longer exists", false
	case errors.Is(err, domain.ErrInvalidInput):
		return "❌ " + err.Error(), false
	case errors.Is(err, domain.ErrTutorUnavailable):
		return "😴 The tutor is unavailable right now. Try again later", false
	default:
		return "Something went wrong. Try again later.", true
	}
}

func formatUser(u *domain.User) string {
	return fmt.Sprintf("👤 %s <%s>\n🌍 Learning: %s\n📊 Level: %s\n🔥 Streak: %d day(s)",
		u.Name, u.Email, u.TargetLanguage, u.Level, u.CurrentStreak)
}

func formatReply(conv *domain.Conversation) string {
	if conv.GrammarCorrection == nil || *conv.GrammarCorrection == "" {
		return conv.AIResponse
	}
	return conv.AIResponse + "\n\n📝 " + *conv.GrammarCorrection
}

func formatWordsPage(entries []domain.VocabularyEntry, page int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Your words (page %d):\n\n", page)
	for i, e := range entries {
		mark := "▫️"
		if e.Mastered {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s — %s\n", (page-1)*wordsPageSize+i+1, mark, e.Word, e.Meaning)
	}
	return b.String()
}

func formatReview(entries []domain.VocabularyEntry) string {
	var b strings.Builder
	b.WriteString("🔁 Time to review:\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s — %s (reviewed %d×)\n", e.Word, e.Meaning, e.ReviewCount)
	}
	b.WriteString("\nTap a word once you know it.")
	return b.String()
}

func formatOverview(o *domain.Overview, v *domain.VocabularyStats) string {
	return fmt.Sprintf("📊 %s, level %s\n\n💬 Conversations: %d\n📚 Words: %d (%d mastered, %.1f%%)\n🔥 Streak: %d day(s)",
		o.TargetLanguage, o.Level, o.TotalConversations, v.Total, v.Mastered, v.MasteryRate, o.CurrentStreak)
}

func formatToday(t *domain.TodayStats) string {
	return fmt.Sprintf("📅 %s\n\n💬 Conversations: %d\n📚 Words added: %d\n🔥 Streak: %d day(s)",
		t.Date.Format("2006-01-02"), t.Conversations, t.WordsAdded, t.CurrentStreak)
}

func formatWeek(days []domain.DayStats, now time.Time) string {
	var b strings.Builder
	b.WriteString("🗓 Last 7 days:\n\n")
	for _, d := range days {
		fmt.Fprintf(&b, "%s: 💬 %d  📚 %d\n", d.DisplayString(now), d.Conversations, d.WordsAdded)
	}
	return b.String()
}

func formatProgress(p *domain.Progress) string {
	return fmt.Sprintf("🎯 Level %s\n\n💬 Conversations: %d/%d (%.1f%%)\n📚 Vocabulary: %d/%d (%.1f%%)\n\nOverall: %.1f%%",
		p.Level,
		p.Conversations.Current, p.Conversations.Goal, p.Conversations.Progress,
		p.Vocabulary.Current, p.Vocabulary.Goal, p.Vocabulary.Progress,
		p.Overall)
}

func formatHistory(convs []domain.Conversation) string {
	var b strings.Builder
	b.WriteString("💬 Recent conversations:\n")
	for _, c := range convs {
		fmt.Fprintf(&b, "\n🧑 %s\n🤖 %s\n", c.UserMessage, c.AIResponse)
	}
	return b.String()
}
