package testutil

import (
	"time"

	"lingotutor/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FixedClock returns a clock frozen at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewTestUser creates a test user learning English at level A1
func NewTestUser(id int64, email string) *domain.User {
	return &domain.User{
		ID:             id,
		Email:          email,
		Name:           "Test User",
		PasswordHash:   "$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinval",
		TargetLanguage: domain.DefaultTargetLanguage,
		Level:          domain.LevelA1,
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// NewTestEntry creates a test vocabulary entry
func NewTestEntry(id, userID int64, word, meaning string) *domain.VocabularyEntry {
	return &domain.VocabularyEntry{
		ID:         id,
		UserID:     userID,
		Word:       word,
		Meaning:    meaning,
		Language:   domain.DefaultTargetLanguage,
		Difficulty: domain.LevelA1,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
