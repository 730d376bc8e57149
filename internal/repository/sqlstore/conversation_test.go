package sqlstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lingotutor/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var conversationRowColumns = []string{
	"id", "user_id", "user_message", "ai_response", "grammar_correction", "pronunciation_score", "created_at",
}

func TestConversationRepo_Create(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	note := "Good job!"

	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{name: "stored"},
		{name: "database error", mockError: fmt.Errorf("database error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewConversationRepo(db)

			conv := &domain.Conversation{
				UserID:            1,
				UserMessage:       "Hello",
				AIResponse:        "Hi!",
				GrammarCorrection: &note,
				CreatedAt:         createdAt,
			}

			exp := mock.ExpectQuery("INSERT INTO conversations").
				WithArgs(int64(1), "Hello", "Hi!", "Good job!", nil, createdAt)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
			}

			err = repo.Create(context.Background(), conv)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(21), conv.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConversationRepo_List(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		newestFirst bool
		expectQuery string
	}{
		{
			name:        "newest first",
			newestFirst: true,
			expectQuery: "ORDER BY created_at DESC, id DESC LIMIT \\$2",
		},
		{
			name:        "oldest first",
			newestFirst: false,
			expectQuery: "ORDER BY created_at ASC, id ASC LIMIT \\$2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewConversationRepo(db)

			rows := sqlmock.NewRows(conversationRowColumns).
				AddRow(1, 1, "Hello", "Hi!", "Good job!", nil, createdAt).
				AddRow(2, 1, "Bye", "See you", nil, 0.85, createdAt.Add(time.Minute))

			query := "SELECT (.+) FROM conversations WHERE user_id = \\$1 " + tt.expectQuery
			mock.ExpectQuery(query).
				WithArgs(int64(1), 20).
				WillReturnRows(rows)

			convs, err := repo.List(context.Background(), 1, 20, tt.newestFirst)

			assert.NoError(t, err)
			if assert.Len(t, convs, 2) {
				if assert.NotNil(t, convs[0].GrammarCorrection) {
					assert.Equal(t, "Good job!", *convs[0].GrammarCorrection)
				}
				assert.Nil(t, convs[0].PronunciationScore)
				assert.Nil(t, convs[1].GrammarCorrection)
				if assert.NotNil(t, convs[1].PronunciationScore) {
					assert.Equal(t, 0.85, *convs[1].PronunciationScore)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConversationRepo_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewConversationRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversations WHERE user_id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepo_CountCreatedBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewConversationRepo(db)

	from := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(13 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversations WHERE user_id = \\$1 AND created_at >= \\$2 AND created_at < \\$3").
		WithArgs(int64(1), from, to).
		WillReturnError(fmt.Errorf("connection refused"))

	count, err := repo.CountCreatedBetween(context.Background(), 1, from, to)

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
