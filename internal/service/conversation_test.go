package service

import (
	"errors"
	"testing"

	"lingotutor/internal/domain"
	"lingotutor/internal/testutil"
	"lingotutor/internal/tutor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConversationService_Chat(t *testing.T) {
	note := "Good job! 문장 구조가 정확해요! ✨"

	tests := []struct {
		name          string
		message       string
		tutorResp     tutor.Response
		tutorErr      error
		expectedError error
		expectStore   bool
	}{
		{
			name:        "answered",
			message:     "  How are you?  ",
			tutorResp:   tutor.Response{Success: true, Reply: "I'm fine!", GrammarNote: &note, TokensUsed: 100},
			expectStore: true,
		},
		{
			name:          "tutor reports failure",
			message:       "Hello",
			tutorResp:     tutor.Response{ErrorMessage: "quota exceeded"},
			expectedError: domain.ErrTutorUnavailable,
		},
		{
			name:          "tutor unreachable",
			message:       "Hello",
			tutorErr:      errors.New("dial tcp: i/o timeout"),
			expectedError: domain.ErrTutorUnavailable,
		},
		{
			name:          "empty message",
			message:       "   ",
			expectedError: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockConversationRepository)
			tut := new(testutil.MockTutor)
			svc := NewConversationService(repo, tut, testutil.NewTestLogger())
			svc.now = testutil.FixedClock(testNow)

			user := testutil.NewTestUser(1, "a@x.com")
			user.Level = domain.LevelB1

			tut.On("Reply", mock.Anything, mock.AnythingOfType("tutor.Request")).Return(tt.tutorResp, tt.tutorErr).Maybe()
			if tt.expectStore {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Conversation")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Conversation).ID = 5 }).
					Return(nil)
			}

			result, err := svc.Chat(testCtx(), user, tt.message)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 100, result.TokensUsed)
			conv := result.Conversation
			assert.Equal(t, int64(5), conv.ID)
			assert.Equal(t, "How are you?", conv.UserMessage)
			assert.Equal(t, "I'm fine!", conv.AIResponse)
			assert.Equal(t, &note, conv.GrammarCorrection)
			assert.Equal(t, testNow, conv.CreatedAt)

			tut.AssertCalled(t, "Reply", mock.Anything, tutor.Request{
				Message:        "How are you?",
				TargetLanguage: "English",
				Level:          domain.LevelB1,
			})
			repo.AssertExpectations(t)
		})
	}
}

func TestConversationService_ChatWithMockTutor(t *testing.T) {
	repo := new(testutil.MockConversationRepository)
	svc := NewConversationService(repo, tutor.NewMock(), testutil.NewTestLogger())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Chat(testCtx(), testutil.NewTestUser(1, "a@x.com"), "Hello")

	require.NoError(t, err)
	assert.Equal(t, 100, result.TokensUsed)
	assert.Contains(t, result.Conversation.AIResponse, "English")
	assert.NotNil(t, result.Conversation.GrammarCorrection)
}

func TestConversationService_History(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		newestFirst   bool
		expectedLimit int
		mockConvs     []domain.Conversation
		mockError     error
		expectedError error
	}{
		{
			name:          "default limit",
			limit:         0,
			newestFirst:   true,
			expectedLimit: 20,
			mockConvs:     []domain.Conversation{{ID: 2}, {ID: 1}},
		},
		{
			name:          "oldest first",
			limit:         5,
			expectedLimit: 5,
		},
		{
			name:          "store failure",
			limit:         5,
			expectedLimit: 5,
			mockError:     errors.New("boom"),
			expectedError: domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockConversationRepository)
			svc := NewConversationService(repo, tutor.NewMock(), testutil.NewTestLogger())

			if tt.mockConvs != nil {
				repo.On("List", mock.Anything, int64(1), tt.expectedLimit, tt.newestFirst).Return(tt.mockConvs, nil)
			} else {
				repo.On("List", mock.Anything, int64(1), tt.expectedLimit, tt.newestFirst).Return(nil, tt.mockError)
			}

			convs, err := svc.History(testCtx(), 1, tt.limit, tt.newestFirst)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, convs)
				assert.Len(t, convs, len(tt.mockConvs))
			}
			repo.AssertExpectations(t)
		})
	}
}
