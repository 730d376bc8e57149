package domain

import "time"

// DefaultTargetLanguage is assigned when signup leaves the language empty
const DefaultTargetLanguage = "English"

// User represents a learner account
type User struct {
	ID                 int64
	Email              string
	Name               string
	PasswordHash       string
	TargetLanguage     string
	Level              Level
	TotalStudyMinutes  int
	TotalConversations int
	TotalWordsLearned  int
	CurrentStreak      int
	CreatedAt          time.Time
	LastLogin          *time.Time
}

// UserState represents the chat front-end's input state for a user
type UserState string

const (
	StateIdle           UserState = "idle"
	StateWaitingWord    UserState = "waiting_word"
	StateWaitingMeaning UserState = "waiting_meaning"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string
}
