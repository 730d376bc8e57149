package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lingotutor/internal/domain"
)

// ConversationRepo implements repository.ConversationRepository
type ConversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new conversation repository
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Create inserts a conversation and fills in its ID
func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	query := `
		INSERT INTO conversations (user_id, user_message, ai_response, grammar_correction, pronunciation_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.UserMessage, c.AIResponse, nullString(c.GrammarCorrection), nullFloat(c.PronunciationScore), c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

// List returns up to limit conversations of the user
func (r *ConversationRepo) List(ctx context.Context, userID int64, limit int, newestFirst bool) ([]domain.Conversation, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `
		SELECT id, user_id, user_message, ai_response, grammar_correction, pronunciation_score, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at ` + order + `, id ` + order + `
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		var grammar sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserMessage, &c.AIResponse, &grammar, &score, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		c.GrammarCorrection = stringPtr(grammar)
		c.PronunciationScore = floatPtr(score)
		c.CreatedAt = c.CreatedAt.UTC()
		convs = append(convs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}
	return convs, nil
}

// Count returns the number of conversations of the user
func (r *ConversationRepo) Count(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM conversations WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return count, nil
}

// CountCreatedBetween counts conversations created in [from, to)
func (r *ConversationRepo) CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM conversations
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count conversations between: %w", err)
	}
	return count, nil
}
