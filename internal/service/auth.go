package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lingotutor/internal/auth"
	"lingotutor/internal/domain"
	"lingotutor/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// AuthService handles accounts, sessions and resolving the current user
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenCodec
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// SignupInput is what a new learner provides
type SignupInput struct {
	Name           string
	Email          string
	Password       string
	TargetLanguage string
}

// Session is an issued token together with the user it belongs to
type Session struct {
	Token string
	User  *domain.User
}

// ProfileUpdate changes the learning settings; empty fields are left as they are
type ProfileUpdate struct {
	TargetLanguage string
	Level          string
}

// Signup registers a user at level A1 with zeroed counters and opens a session
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" || email == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidInput)
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, auth.MaxPasswordBytes)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, unavailable("signup", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(in.TargetLanguage)
	if language == "" {
		language = domain.DefaultTargetLanguage
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:          email,
		Name:           name,
		PasswordHash:   digest,
		TargetLanguage: language,
		Level:          domain.LevelA1,
		CreatedAt:      now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, unavailable("signup", err)
	}

	token, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed up", zap.Int64("user_id", user.ID))
	return &Session{Token: token, User: user}, nil
}

// Login checks the credentials, records the login and opens a session.
// Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, unavailable("login", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	streak := nextStreak(user.LastLogin, user.CurrentStreak, now)
	if err := s.userRepo.RecordLogin(ctx, user.ID, now, streak); err != nil {
		return nil, unavailable("login", err)
	}
	user.LastLogin = &now
	user.CurrentStreak = streak

	token, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID), zap.Int("streak", streak))
	return &Session{Token: token, User: user}, nil
}

// Resolve returns the user identified by a "Bearer <token>" credential
func (s *AuthService) Resolve(ctx context.Context, authorization string) (*domain.User, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	id, err := s.tokens.Decode(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, unavailable("resolve user", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the user's target language and/or level
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, in ProfileUpdate) (*domain.User, error) {
	updated := *user

	if lang := strings.TrimSpace(in.TargetLanguage); lang != "" {
		updated.TargetLanguage = lang
	}
	if strings.TrimSpace(in.Level) != "" {
		level, err := domain.ParseLevel(in.Level)
		if err != nil {
			return nil, err
		}
		updated.Level = level
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, updated.TargetLanguage, updated.Level); err != nil {
		return nil, unavailable("update profile", err)
	}

	s.logger.Info("Profile updated",
		zap.Int64("user_id", user.ID),
		zap.String("target_language", updated.TargetLanguage),
		zap.String("level", string(updated.Level)),
	)
	return &updated, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// bearerToken extracts the token from an Authorization header value
func bearerToken(authorization string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(authorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// nextStreak counts consecutive UTC days with a login
func nextStreak(lastLogin *time.Time, current int, now time.Time) int {
	if lastLogin == nil {
		return 1
	}
	today := startOfDay(now)
	last := startOfDay(*lastLogin)

	switch {
	case last.Equal(today):
		if current < 1 {
			return 1
		}
		return current
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
