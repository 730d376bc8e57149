package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingotutor/internal/domain"
)

const vocabularyColumns = `id, user_id, word, meaning, example, translation, language,
	difficulty, is_mastered, review_count, created_at, last_reviewed`

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// Create inserts an entry and fills in its ID
func (r *VocabularyRepo) Create(ctx context.Context, e *domain.VocabularyEntry) error {
	return insertVocabulary(ctx, r.db, e)
}

// CreateBatch inserts all entries in one transaction and fills in their IDs.
// Nothing is stored when any insert fails.
func (r *VocabularyRepo) CreateBatch(ctx context.Context, entries []*domain.VocabularyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vocabulary batch: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if err := insertVocabulary(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vocabulary batch: %w", err)
	}
	return nil
}

// List returns a page of the user's entries, newest first.
// A non-nil mastered restricts the page to that mastery state.
func (r *VocabularyRepo) List(ctx context.Context, userID int64, offset, limit int, mastered *bool) ([]domain.VocabularyEntry, error) {
	if mastered != nil {
		query := `
			SELECT ` + vocabularyColumns + `
			FROM vocabularies
			WHERE user_id = $1 AND is_mastered = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3 OFFSET $4
		`
		return r.query(ctx, query, userID, *mastered, limit, offset)
	}

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabularies
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.query(ctx, query, userID, limit, offset)
}

// ListAll returns every entry of the user, oldest first
func (r *VocabularyRepo) ListAll(ctx context.Context, userID int64) ([]domain.VocabularyEntry, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabularies
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.query(ctx, query, userID)
}

// ListDueForReview returns unmastered entries, least reviewed first
func (r *VocabularyRepo) ListDueForReview(ctx context.Context, userID int64, limit int) ([]domain.VocabularyEntry, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabularies
		WHERE user_id = $1 AND is_mastered = FALSE
		ORDER BY review_count ASC, id ASC
		LIMIT $2
	`
	return r.query(ctx, query, userID, limit)
}

// SetMastery sets the flag, bumps review_count and stamps last_reviewed in one statement.
// Returns nil when the entry does not exist or belongs to another user.
func (r *VocabularyRepo) SetMastery(ctx context.Context, userID, id int64, mastered bool, reviewedAt time.Time) (*domain.VocabularyEntry, error) {
	query := `
		UPDATE vocabularies
		SET is_mastered = $1, review_count = review_count + 1, last_reviewed = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + vocabularyColumns

	e, err := scanVocabulary(r.db.QueryRowContext(ctx, query, mastered, reviewedAt, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set mastery on entry %d: %w", id, err)
	}
	return e, nil
}

// Delete removes the entry and reports whether a row owned by userID was deleted
func (r *VocabularyRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	query := `DELETE FROM vocabularies WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	return n > 0, nil
}

// Count returns the number of entries, optionally filtered by mastery
func (r *VocabularyRepo) Count(ctx context.Context, userID int64, mastered *bool) (int, error) {
	var count int
	var err error
	if mastered != nil {
		query := `SELECT COUNT(*) FROM vocabularies WHERE user_id = $1 AND is_mastered = $2`
		err = r.db.QueryRowContext(ctx, query, userID, *mastered).Scan(&count)
	} else {
		query := `SELECT COUNT(*) FROM vocabularies WHERE user_id = $1`
		err = r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count vocabulary: %w", err)
	}
	return count, nil
}

// CountCreatedBetween counts entries created in [from, to)
func (r *VocabularyRepo) CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM vocabularies
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count vocabulary between: %w", err)
	}
	return count, nil
}

func (r *VocabularyRepo) query(ctx context.Context, query string, args ...any) ([]domain.VocabularyEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		e, err := scanVocabulary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocabulary: %w", err)
	}
	return entries, nil
}

func insertVocabulary(ctx context.Context, q queryRower, e *domain.VocabularyEntry) error {
	query := `
		INSERT INTO vocabularies (user_id, word, meaning, example, translation, language, difficulty, is_mastered, review_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		e.UserID, e.Word, e.Meaning, nullString(e.Example), nullString(e.Translation),
		e.Language, string(e.Difficulty), e.Mastered, e.ReviewCount, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create vocabulary entry: %w", err)
	}
	return nil
}

func scanVocabulary(row rowScanner) (*domain.VocabularyEntry, error) {
	var e domain.VocabularyEntry
	var example, translation sql.NullString
	var difficulty string
	var lastReviewed sql.NullTime
	err := row.Scan(
		&e.ID, &e.UserID, &e.Word, &e.Meaning, &example, &translation, &e.Language,
		&difficulty, &e.Mastered, &e.ReviewCount, &e.CreatedAt, &lastReviewed,
	)
	if err != nil {
		return nil, err
	}
	e.Example = stringPtr(example)
	e.Translation = stringPtr(translation)
	e.Difficulty = domain.Level(difficulty)
	e.CreatedAt = e.CreatedAt.UTC()
	e.LastReviewed = timePtr(lastReviewed)
	return &e, nil
}
