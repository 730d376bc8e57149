package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingotutor/internal/domain"
)

const userColumns = `id, email, name, hashed_password, target_language, level,
	total_study_time, total_conversations, total_words_learned, current_streak,
	created_at, last_login`

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user and fills in its ID.
// A taken email yields domain.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, name, hashed_password, target_language, level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.TargetLanguage, string(u.Level), u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID returns the user with the given id, or nil if none exists
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail returns the user with the given email, or nil if none exists
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// RecordLogin stamps the last login time and stores the recomputed streak
func (r *UserRepo) RecordLogin(ctx context.Context, id int64, at time.Time, streak int) error {
	query := `UPDATE users SET last_login = $1, current_streak = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, at, streak, id); err != nil {
		return fmt.Errorf("record login for user %d: %w", id, err)
	}
	return nil
}

// UpdateProfile changes the learning language and level
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, targetLanguage string, level domain.Level) error {
	query := `UPDATE users SET target_language = $1, level = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, targetLanguage, string(level), id); err != nil {
		return fmt.Errorf("update profile for user %d: %w", id, err)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var level string
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.TargetLanguage, &level,
		&u.TotalStudyMinutes, &u.TotalConversations, &u.TotalWordsLearned, &u.CurrentStreak,
		&u.CreatedAt, &lastLogin,
	)
	if err != nil {
		return nil, err
	}
	u.Level = domain.Level(level)
	u.CreatedAt = u.CreatedAt.UTC()
	u.LastLogin = timePtr(lastLogin)
	return &u, nil
}
