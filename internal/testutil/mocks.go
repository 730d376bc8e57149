package testutil

import (
	"context"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/tutor"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id int64, at time.Time, streak int) error {
	args := m.Called(ctx, id, at, streak)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, targetLanguage string, level domain.Level) error {
	args := m.Called(ctx, id, targetLanguage, level)
	return args.Error(0)
}

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Create(ctx context.Context, entry *domain.VocabularyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockVocabularyRepository) CreateBatch(ctx context.Context, entries []*domain.VocabularyEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockVocabularyRepository) List(ctx context.Context, userID int64, offset, limit int, mastered *bool) ([]domain.VocabularyEntry, error) {
	args := m.Called(ctx, userID, offset, limit, mastered)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) ListAll(ctx context.Context, userID int64) ([]domain.VocabularyEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) ListDueForReview(ctx context.Context, userID int64, limit int) ([]domain.VocabularyEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) SetMastery(ctx context.Context, userID, id int64, mastered bool, reviewedAt time.Time) (*domain.VocabularyEntry, error) {
	args := m.Called(ctx, userID, id, mastered, reviewedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context, userID int64, mastered *bool) (int, error) {
	args := m.Called(ctx, userID, mastered)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}

// MockConversationRepository is a mock for ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) List(ctx context.Context, userID int64, limit int, newestFirst bool) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID, limit, newestFirst)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Count(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockConversationRepository) CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}

// MockTutor is a mock for tutor.Tutor
type MockTutor struct {
	mock.Mock
}

func (m *MockTutor) Reply(ctx context.Context, req tutor.Request) (tutor.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(tutor.Response), args.Error(1)
}
