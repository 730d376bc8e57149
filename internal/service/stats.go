package service

import (
	"context"
	"math"
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/repository"

	"go.uber.org/zap"
)

const weekDays = 7

var levelGoals = map[domain.Level]domain.Goal{
	domain.LevelA1: {Conversations: 50, Words: 100},
	domain.LevelA2: {Conversations: 100, Words: 200},
	domain.LevelB1: {Conversations: 200, Words: 400},
	domain.LevelB2: {Conversations: 400, Words: 800},
	domain.LevelC1: {Conversations: 800, Words: 1500},
	domain.LevelC2: {Conversations: 1500, Words: 3000},
}

// GoalFor returns the goals of level; an unknown level gets the A1 goals
func GoalFor(level domain.Level) domain.Goal {
	if g, ok := levelGoals[level]; ok {
		return g
	}
	return levelGoals[domain.LevelA1]
}

// StatsService aggregates study statistics on demand
type StatsService struct {
	vocabRepo repository.VocabularyRepository
	convRepo  repository.ConversationRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(vocabRepo repository.VocabularyRepository, convRepo repository.ConversationRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		vocabRepo: vocabRepo,
		convRepo:  convRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview returns the all-time summary for user
func (s *StatsService) Overview(ctx context.Context, user *domain.User) (*domain.Overview, error) {
	conversations, err := s.convRepo.Count(ctx, user.ID)
	if err != nil {
		return nil, s.fail("overview", user.ID, err)
	}
	words, err := s.vocabRepo.Count(ctx, user.ID, nil)
	if err != nil {
		return nil, s.fail("overview", user.ID, err)
	}
	mastered := true
	masteredWords, err := s.vocabRepo.Count(ctx, user.ID, &mastered)
	if err != nil {
		return nil, s.fail("overview", user.ID, err)
	}

	return &domain.Overview{
		TotalStudyMinutes:  user.TotalStudyMinutes,
		TotalConversations: conversations,
		TotalWords:         words,
		MasteredWords:      masteredWords,
		CurrentStreak:      user.CurrentStreak,
		TargetLanguage:     user.TargetLanguage,
		Level:              user.Level,
	}, nil
}

// Today counts what the user did since UTC midnight
func (s *StatsService) Today(ctx context.Context, user *domain.User) (*domain.TodayStats, error) {
	now := s.now().UTC()
	start := startOfDay(now)

	conversations, err := s.convRepo.CountCreatedBetween(ctx, user.ID, start, now)
	if err != nil {
		return nil, s.fail("today", user.ID, err)
	}
	words, err := s.vocabRepo.CountCreatedBetween(ctx, user.ID, start, now)
	if err != nil {
		return nil, s.fail("today", user.ID, err)
	}

	return &domain.TodayStats{
		Date:          start,
		Conversations: conversations,
		WordsAdded:    words,
		CurrentStreak: user.CurrentStreak,
	}, nil
}

// Weekly returns one entry per UTC day for the last seven days, oldest first
func (s *StatsService) Weekly(ctx context.Context, userID int64) ([]domain.DayStats, error) {
	today := startOfDay(s.now())

	days := make([]domain.DayStats, 0, weekDays)
	for i := weekDays - 1; i >= 0; i-- {
		from := today.AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)

		conversations, err := s.convRepo.CountCreatedBetween(ctx, userID, from, to)
		if err != nil {
			return nil, s.fail("weekly", userID, err)
		}
		words, err := s.vocabRepo.CountCreatedBetween(ctx, userID, from, to)
		if err != nil {
			return nil, s.fail("weekly", userID, err)
		}

		days = append(days, domain.DayStats{
			Date:          from,
			Conversations: conversations,
			WordsAdded:    words,
		})
	}
	return days, nil
}

// Progress compares the user's totals with the goals of their level
func (s *StatsService) Progress(ctx context.Context, user *domain.User) (*domain.Progress, error) {
	goal := GoalFor(user.Level)

	conversations, err := s.convRepo.Count(ctx, user.ID)
	if err != nil {
		return nil, s.fail("progress", user.ID, err)
	}
	words, err := s.vocabRepo.Count(ctx, user.ID, nil)
	if err != nil {
		return nil, s.fail("progress", user.ID, err)
	}

	convProgress := percentOf(conversations, goal.Conversations)
	vocabProgress := percentOf(words, goal.Words)

	return &domain.Progress{
		Level: user.Level,
		Conversations: domain.GoalProgress{
			Current:  conversations,
			Goal:     goal.Conversations,
			Progress: round1(convProgress),
		},
		Vocabulary: domain.GoalProgress{
			Current:  words,
			Goal:     goal.Words,
			Progress: round1(vocabProgress),
		},
		Overall: round1((convProgress + vocabProgress) / 2),
	}, nil
}

func (s *StatsService) fail(op string, userID int64, err error) error {
	s.logger.Error("Failed to compute statistics",
		zap.String("op", op),
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	return unavailable(op, err)
}

// percentOf is current/goal as a percentage, capped at 100
func percentOf(current, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, float64(current)/float64(goal)*100)
}
