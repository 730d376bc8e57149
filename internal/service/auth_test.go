package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lingotutor/internal/auth"
	"lingotutor/internal/domain"
	"lingotutor/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, 6, 15, 13, 30, 0, 0, time.UTC)

func newTestAuthService(repo *testutil.MockUserRepository) *AuthService {
	svc := NewAuthService(
		repo,
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenCodec("test-secret", auth.DefaultTokenTTL).WithClock(testutil.FixedClock(testNow)),
		testutil.NewTestLogger(),
	)
	svc.now = testutil.FixedClock(testNow)
	return svc
}

func TestAuthService_Signup(t *testing.T) {
	repo := new(testutil.MockUserRepository)
	svc := newTestAuthService(repo)

	var created *domain.User
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
			created.ID = 1
		}).
		Return(nil)

	session, err := svc.Signup(testCtx(), SignupInput{Name: "Ann", Email: "  A@X.com ", Password: "p1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), session.User.ID)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.Equal(t, domain.LevelA1, session.User.Level)
	assert.Equal(t, "English", session.User.TargetLanguage)
	assert.Zero(t, session.User.TotalStudyMinutes)
	assert.Zero(t, session.User.TotalConversations)
	assert.Zero(t, session.User.TotalWordsLearned)
	assert.Zero(t, session.User.CurrentStreak)
	assert.Equal(t, testNow, session.User.CreatedAt)
	assert.NotEqual(t, "p1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("p1")))

	// the token resolves back to the same user
	repo.On("GetByID", mock.Anything, int64(1)).Return(created, nil)
	resolved, err := svc.Resolve(testCtx(), "Bearer "+session.Token)
	require.NoError(t, err)
	assert.Equal(t, created, resolved)

	repo.AssertNumberOfCalls(t, "Create", 1)
	repo.AssertExpectations(t)
}

func TestAuthService_Signup_Failures(t *testing.T) {
	tests := []struct {
		name          string
		input         SignupInput
		setup         func(repo *testutil.MockUserRepository)
		expectedError error
		expectCreate  bool
	}{
		{
			name:  "duplicate email",
			input: SignupInput{Name: "Ann", Email: "a@x.com", Password: "p1"},
			setup: func(repo *testutil.MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "a@x.com").Return(testutil.NewTestUser(1, "a@x.com"), nil)
			},
			expectedError: domain.ErrDuplicateEmail,
		},
		{
			name:  "duplicate email lost race",
			input: SignupInput{Name: "Ann", Email: "a@x.com", Password: "p1"},
			setup: func(repo *testutil.MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)
			},
			expectedError: domain.ErrDuplicateEmail,
			expectCreate:  true,
		},
		{
			name:          "missing password",
			input:         SignupInput{Name: "Ann", Email: "a@x.com"},
			setup:         func(repo *testutil.MockUserRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "malformed email",
			input:         SignupInput{Name: "Ann", Email: "ann", Password: "p1"},
			setup:         func(repo *testutil.MockUserRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "bare at sign",
			input:         SignupInput{Name: "Ann", Email: "@", Password: "p1"},
			setup:         func(repo *testutil.MockUserRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "password over bcrypt limit",
			input:         SignupInput{Name: "Ann", Email: "a@x.com", Password: strings.Repeat("p", 80)},
			setup:         func(repo *testutil.MockUserRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:  "store down",
			input: SignupInput{Name: "Ann", Email: "a@x.com", Password: "p1"},
			setup: func(repo *testutil.MockUserRepository) {
				repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection refused"))
			},
			expectedError: domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			tt.setup(repo)
			svc := newTestAuthService(repo)

			session, err := svc.Signup(testCtx(), tt.input)

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, session)
			if !tt.expectCreate {
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("p1")
	require.NoError(t, err)

	yesterday := testNow.AddDate(0, 0, -1)

	tests := []struct {
		name           string
		email          string
		password       string
		user           *domain.User
		expectedError  error
		expectedStreak int
	}{
		{
			name:           "correct credentials",
			email:          "A@x.com",
			password:       "p1",
			user:           &domain.User{ID: 1, Email: "a@x.com", PasswordHash: digest, CurrentStreak: 3, LastLogin: &yesterday},
			expectedStreak: 4,
		},
		{
			name:          "wrong password",
			email:         "a@x.com",
			password:      "nope",
			user:          &domain.User{ID: 1, Email: "a@x.com", PasswordHash: digest},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:          "unknown email",
			email:         "a@x.com",
			password:      "p1",
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			svc := newTestAuthService(repo)

			if tt.user != nil {
				repo.On("GetByEmail", mock.Anything, "a@x.com").Return(tt.user, nil)
			} else {
				repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
			}
			if tt.expectedError == nil {
				repo.On("RecordLogin", mock.Anything, int64(1), testNow, tt.expectedStreak).Return(nil)
			}

			session, err := svc.Login(testCtx(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
				repo.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, session.Token)
				assert.Equal(t, tt.expectedStreak, session.User.CurrentStreak)
				assert.Equal(t, testNow, *session.User.LastLogin)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestNextStreak(t *testing.T) {
	at := func(days int, hour int) *time.Time {
		v := time.Date(2024, 6, 15+days, hour, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name      string
		lastLogin *time.Time
		current   int
		expected  int
	}{
		{name: "first login", lastLogin: nil, current: 0, expected: 1},
		{name: "same day keeps streak", lastLogin: at(0, 1), current: 5, expected: 5},
		{name: "same day with zero streak", lastLogin: at(0, 1), current: 0, expected: 1},
		{name: "previous day extends streak", lastLogin: at(-1, 23), current: 5, expected: 6},
		{name: "gap resets streak", lastLogin: at(-2, 12), current: 5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextStreak(tt.lastLogin, tt.current, testNow))
		})
	}
}

func TestAuthService_Resolve(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret", auth.DefaultTokenTTL)
	valid, err := codec.Issue(1, testNow)
	require.NoError(t, err)
	orphan, err := codec.Issue(2, testNow)
	require.NoError(t, err)
	expired, err := codec.Issue(1, testNow.AddDate(0, 0, -31))
	require.NoError(t, err)

	user := testutil.NewTestUser(1, "a@x.com")

	tests := []struct {
		name          string
		authorization string
		expectedError error
	}{
		{name: "valid", authorization: "Bearer " + valid},
		{name: "scheme is case-insensitive", authorization: "bearer " + valid},
		{name: "no credential", authorization: "", expectedError: domain.ErrUnauthenticated},
		{name: "wrong scheme", authorization: "Basic " + valid, expectedError: domain.ErrUnauthenticated},
		{name: "scheme only", authorization: "Bearer ", expectedError: domain.ErrUnauthenticated},
		{name: "garbage token", authorization: "Bearer abc.def.ghi", expectedError: domain.ErrInvalidToken},
		{name: "expired token", authorization: "Bearer " + expired, expectedError: domain.ErrInvalidToken},
		{name: "user gone", authorization: "Bearer " + orphan, expectedError: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			repo.On("GetByID", mock.Anything, int64(1)).Return(user, nil).Maybe()
			repo.On("GetByID", mock.Anything, int64(2)).Return(nil, nil).Maybe()
			svc := newTestAuthService(repo)

			got, err := svc.Resolve(testCtx(), tt.authorization)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user, got)
			}
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name             string
		input            ProfileUpdate
		expectedLanguage string
		expectedLevel    domain.Level
		expectedError    error
	}{
		{
			name:             "level only",
			input:            ProfileUpdate{Level: "b2"},
			expectedLanguage: "English",
			expectedLevel:    domain.LevelB2,
		},
		{
			name:             "language only",
			input:            ProfileUpdate{TargetLanguage: "Japanese"},
			expectedLanguage: "Japanese",
			expectedLevel:    domain.LevelA1,
		},
		{
			name:          "unknown level",
			input:         ProfileUpdate{Level: "D1"},
			expectedError: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			svc := newTestAuthService(repo)
			user := testutil.NewTestUser(1, "a@x.com")

			if tt.expectedError == nil {
				repo.On("UpdateProfile", mock.Anything, int64(1), tt.expectedLanguage, tt.expectedLevel).Return(nil)
			}

			updated, err := svc.UpdateProfile(testCtx(), user, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedLanguage, updated.TargetLanguage)
				assert.Equal(t, tt.expectedLevel, updated.Level)
				assert.Equal(t, domain.LevelA1, user.Level, "input user is not modified")
			}
			repo.AssertExpectations(t)
		})
	}
}
