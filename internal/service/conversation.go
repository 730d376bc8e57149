package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/repository"
	"lingotutor/internal/tutor"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

// ConversationService runs tutor chat turns and keeps the conversation log
type ConversationService struct {
	repo   repository.ConversationRepository
	tutor  tutor.Tutor
	logger *zap.Logger
	now    func() time.Time
}

// NewConversationService creates a new conversation service
func NewConversationService(repo repository.ConversationRepository, t tutor.Tutor, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		repo:   repo,
		tutor:  t,
		logger: logger,
		now:    time.Now,
	}
}

// ChatResult is one answered chat turn
type ChatResult struct {
	Conversation *domain.Conversation
	TokensUsed   int
}

// Chat asks the tutor and logs the exchange. Nothing is stored when the tutor fails.
func (s *ConversationService) Chat(ctx context.Context, user *domain.User, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	resp, err := s.tutor.Reply(ctx, tutor.Request{
		Message:        message,
		TargetLanguage: user.TargetLanguage,
		Level:          user.Level,
	})
	if err != nil {
		s.logger.Warn("Tutor call failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTutorUnavailable, err)
	}
	if !resp.Success {
		s.logger.Warn("Tutor returned no answer", zap.Int64("user_id", user.ID), zap.String("reason", resp.ErrorMessage))
		return nil, fmt.Errorf("%w: %s", domain.ErrTutorUnavailable, resp.ErrorMessage)
	}

	conv, err := s.Append(ctx, user.ID, message, resp.Reply, resp.GrammarNote)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Chat turn stored",
		zap.Int64("user_id", user.ID),
		zap.Int64("conversation_id", conv.ID),
		zap.Int("tokens_used", resp.TokensUsed),
	)
	return &ChatResult{Conversation: conv, TokensUsed: resp.TokensUsed}, nil
}

// Append stores one exchange stamped with the current time
func (s *ConversationService) Append(ctx context.Context, userID int64, userMessage, aiResponse string, grammarCorrection *string) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		UserID:            userID,
		UserMessage:       userMessage,
		AIResponse:        aiResponse,
		GrammarCorrection: grammarCorrection,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.repo.Create(ctx, conv); err != nil {
		s.logger.Error("Failed to store conversation", zap.Int64("user_id", userID), zap.Error(err))
		return nil, unavailable("append conversation", err)
	}
	return conv, nil
}

// History returns up to limit conversations, newest first unless asked otherwise
func (s *ConversationService) History(ctx context.Context, userID int64, limit int, newestFirst bool) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	convs, err := s.repo.List(ctx, userID, limit, newestFirst)
	if err != nil {
		return nil, unavailable("conversation history", err)
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}
