package repository

import (
	"context"
	"time"

	"lingotutor/internal/domain"
)

// UserRepository defines user data operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	RecordLogin(ctx context.Context, id int64, at time.Time, streak int) error
	UpdateProfile(ctx context.Context, id int64, targetLanguage string, level domain.Level) error
}

// VocabularyRepository defines vocabulary data operations, always scoped to one owner
type VocabularyRepository interface {
	Create(ctx context.Context, entry *domain.VocabularyEntry) error
	CreateBatch(ctx context.Context, entries []*domain.VocabularyEntry) error
	List(ctx context.Context, userID int64, offset, limit int, mastered *bool) ([]domain.VocabularyEntry, error)
	ListAll(ctx context.Context, userID int64) ([]domain.VocabularyEntry, error)
	ListDueForReview(ctx context.Context, userID int64, limit int) ([]domain.VocabularyEntry, error)
	SetMastery(ctx context.Context, userID, id int64, mastered bool, reviewedAt time.Time) (*domain.VocabularyEntry, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	Count(ctx context.Context, userID int64, mastered *bool) (int, error)
	CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error)
}

// ConversationRepository defines conversation data operations
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	List(ctx context.Context, userID int64, limit int, newestFirst bool) ([]domain.Conversation, error)
	Count(ctx context.Context, userID int64) (int, error)
	CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error)
}
