package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultVocabularyLimit = 50
	defaultReviewLimit     = 20
)

// VocabularyService manages each user's word list
type VocabularyService struct {
	repo   repository.VocabularyRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(repo repository.VocabularyRepository, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// NewVocabulary is a word the user wants to keep
type NewVocabulary struct {
	Word        string
	Meaning     string
	Example     *string
	Translation *string
	Difficulty  string
}

// Add saves a word in the user's target language. Difficulty defaults to A1.
func (s *VocabularyService) Add(ctx context.Context, user *domain.User, in NewVocabulary) (*domain.VocabularyEntry, error) {
	entry, err := s.newEntry(user, in)
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *VocabularyService) newEntry(user *domain.User, in NewVocabulary) (*domain.VocabularyEntry, error) {
	word := strings.TrimSpace(in.Word)
	meaning := strings.TrimSpace(in.Meaning)
	if word == "" || meaning == "" {
		return nil, fmt.Errorf("%w: word and meaning are required", domain.ErrInvalidInput)
	}

	difficulty, err := domain.ParseLevel(in.Difficulty)
	if err != nil {
		return nil, err
	}

	return &domain.VocabularyEntry{
		UserID:      user.ID,
		Word:        word,
		Meaning:     meaning,
		Example:     optional(in.Example),
		Translation: optional(in.Translation),
		Language:    user.TargetLanguage,
		Difficulty:  difficulty,
		CreatedAt:   s.now().UTC(),
	}, nil
}

func (s *VocabularyService) create(ctx context.Context, entry *domain.VocabularyEntry) error {
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to save word", zap.Int64("user_id", entry.UserID), zap.Error(err))
		return unavailable("add word", err)
	}
	s.logger.Debug("Word saved", zap.Int64("user_id", entry.UserID), zap.Int64("entry_id", entry.ID))
	return nil
}

// List returns a page of entries, newest first
func (s *VocabularyService) List(ctx context.Context, userID int64, offset, limit int, mastered *bool) ([]domain.VocabularyEntry, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultVocabularyLimit
	}

	entries, err := s.repo.List(ctx, userID, offset, limit, mastered)
	if err != nil {
		return nil, unavailable("list words", err)
	}
	if entries == nil {
		entries = []domain.VocabularyEntry{}
	}
	return entries, nil
}

// DueForReview returns unmastered entries, least reviewed first
func (s *VocabularyService) DueForReview(ctx context.Context, userID int64, limit int) ([]domain.VocabularyEntry, error) {
	if limit <= 0 {
		limit = defaultReviewLimit
	}

	entries, err := s.repo.ListDueForReview(ctx, userID, limit)
	if err != nil {
		return nil, unavailable("list review words", err)
	}
	if entries == nil {
		entries = []domain.VocabularyEntry{}
	}
	return entries, nil
}

// SetMastery records a review of the entry with the given outcome
func (s *VocabularyService) SetMastery(ctx context.Context, userID, id int64, mastered bool) (*domain.VocabularyEntry, error) {
	entry, err := s.repo.SetMastery(ctx, userID, id, mastered, s.now().UTC())
	if err != nil {
		return nil, unavailable("set mastery", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Remove deletes one of the user's entries
func (s *VocabularyService) Remove(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return unavailable("remove word", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats summarizes the user's progress through the list
func (s *VocabularyService) Stats(ctx context.Context, userID int64) (*domain.VocabularyStats, error) {
	total, err := s.repo.Count(ctx, userID, nil)
	if err != nil {
		return nil, unavailable("vocabulary stats", err)
	}

	mastered := true
	masteredCount, err := s.repo.Count(ctx, userID, &mastered)
	if err != nil {
		return nil, unavailable("vocabulary stats", err)
	}

	stats := &domain.VocabularyStats{
		Total:    total,
		Mastered: masteredCount,
		Learning: total - masteredCount,
	}
	if total > 0 {
		stats.MasteryRate = round1(float64(masteredCount) / float64(total) * 100)
	}
	return stats, nil
}
