package domain

import "time"

// Conversation is one learner message and the tutor's reply
type Conversation struct {
	ID                 int64
	UserID             int64
	UserMessage        string
	AIResponse         string
	GrammarCorrection  *string
	PronunciationScore *float64
	CreatedAt          time.Time
}
