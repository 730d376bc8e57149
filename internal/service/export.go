package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lingotutor/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const vocabularySheet = "Vocabulary"

var vocabularyHeaders = []string{"word", "meaning", "example", "translation", "difficulty", "mastered"}

// ImportResult reports how an uploaded spreadsheet was applied
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// ExportXLSX writes every entry of the user into a spreadsheet, oldest first
func (s *VocabularyService) ExportXLSX(ctx context.Context, userID int64) ([]byte, error) {
	entries, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, unavailable("export words", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", vocabularySheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(vocabularyHeaders))
	for _, h := range vocabularyHeaders {
		header = append(header, h)
	}
	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}

	for idx, e := range entries {
		values := []interface{}{
			e.Word,
			e.Meaning,
			deref(e.Example),
			deref(e.Translation),
			string(e.Difficulty),
			strconv.FormatBool(e.Mastered),
		}
		if err := writeRow(f, idx+2, values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(vocabularySheet, "A", "B", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(vocabularySheet, "C", "D", 40); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Vocabulary exported", zap.Int64("user_id", userID), zap.Int("entries", len(entries)))
	return buf.Bytes(), nil
}

// ImportXLSX adds every row of the first sheet as a new entry.
// The columns follow ExportXLSX; a header row is skipped and invalid rows are counted as skipped.
func (s *VocabularyService) ImportXLSX(ctx context.Context, user *domain.User, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a spreadsheet: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", domain.ErrInvalidInput, err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var entries []*domain.VocabularyEntry
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), vocabularyHeaders[0]) {
			continue
		}
		if isBlankRow(row) {
			continue
		}

		entry, err := s.importRow(user, row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		entries = append(entries, entry)
	}

	// all or nothing
	if len(entries) > 0 {
		if err := s.repo.CreateBatch(ctx, entries); err != nil {
			s.logger.Error("Failed to import words", zap.Int64("user_id", user.ID), zap.Int("rows", len(entries)), zap.Error(err))
			return nil, unavailable("import words", err)
		}
	}
	result.Imported = len(entries)

	s.logger.Info("Vocabulary imported",
		zap.Int64("user_id", user.ID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (s *VocabularyService) importRow(user *domain.User, row []string) (*domain.VocabularyEntry, error) {
	entry, err := s.newEntry(user, NewVocabulary{
		Word:        cellAt(row, 0),
		Meaning:     cellAt(row, 1),
		Example:     strPtr(cellAt(row, 2)),
		Translation: strPtr(cellAt(row, 3)),
		Difficulty:  cellAt(row, 4),
	})
	if err != nil {
		return nil, err
	}

	if raw := cellAt(row, 5); raw != "" {
		mastered, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: mastered must be true or false, got %q", domain.ErrInvalidInput, raw)
		}
		entry.Mastered = mastered
	}
	return entry, nil
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(vocabularySheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func strPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
