package httpapi

import (
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/service"
)

type userView struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	TargetLanguage     string     `json:"target_language"`
	Level              string     `json:"level"`
	TotalStudyTime     int        `json:"total_study_time"`
	TotalConversations int        `json:"total_conversations"`
	TotalWordsLearned  int        `json:"total_words_learned"`
	CurrentStreak      int        `json:"current_streak"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login"`
}

func newUserView(u *domain.User) userView {
	return userView{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		TargetLanguage:     u.TargetLanguage,
		Level:              string(u.Level),
		TotalStudyTime:     u.TotalStudyMinutes,
		TotalConversations: u.TotalConversations,
		TotalWordsLearned:  u.TotalWordsLearned,
		CurrentStreak:      u.CurrentStreak,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

type sessionView struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userView `json:"user"`
}

func newSessionView(s *service.Session) sessionView {
	return sessionView{
		AccessToken: s.Token,
		TokenType:   "bearer",
		User:        newUserView(s.User),
	}
}

type vocabularyView struct {
	ID           int64      `json:"id"`
	Word         string     `json:"word"`
	Meaning      string     `json:"meaning"`
	Example      *string    `json:"example"`
	Translation  *string    `json:"translation"`
	Language     string     `json:"language"`
	Difficulty   string     `json:"difficulty"`
	IsMastered   bool       `json:"is_mastered"`
	ReviewCount  int        `json:"review_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastReviewed *time.Time `json:"last_reviewed"`
}

func newVocabularyView(e *domain.VocabularyEntry) vocabularyView {
	return vocabularyView{
		ID:           e.ID,
		Word:         e.Word,
		Meaning:      e.Meaning,
		Example:      e.Example,
		Translation:  e.Translation,
		Language:     e.Language,
		Difficulty:   string(e.Difficulty),
		IsMastered:   e.Mastered,
		ReviewCount:  e.ReviewCount,
		CreatedAt:    e.CreatedAt,
		LastReviewed: e.LastReviewed,
	}
}

func newVocabularyViews(entries []domain.VocabularyEntry) []vocabularyView {
	views := make([]vocabularyView, 0, len(entries))
	for i := range entries {
		views = append(views, newVocabularyView(&entries[i]))
	}
	return views
}

type conversationView struct {
	ID                 int64     `json:"id"`
	UserMessage        string    `json:"user_message"`
	AIResponse         string    `json:"ai_response"`
	GrammarCorrection  *string   `json:"grammar_correction"`
	PronunciationScore *float64  `json:"pronunciation_score"`
	Timestamp          time.Time `json:"timestamp"`
}

func newConversationViews(convs []domain.Conversation) []conversationView {
	views := make([]conversationView, 0, len(convs))
	for _, c := range convs {
		views = append(views, conversationView{
			ID:                 c.ID,
			UserMessage:        c.UserMessage,
			AIResponse:         c.AIResponse,
			GrammarCorrection:  c.GrammarCorrection,
			PronunciationScore: c.PronunciationScore,
			Timestamp:          c.CreatedAt,
		})
	}
	return views
}

type goalView struct {
	Current  int     `json:"current"`
	Goal     int     `json:"goal"`
	Progress float64 `json:"progress"`
}

func newGoalView(g domain.GoalProgress) goalView {
	return goalView{Current: g.Current, Goal: g.Goal, Progress: g.Progress}
}
