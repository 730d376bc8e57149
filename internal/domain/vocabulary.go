package domain

import "time"

// VocabularyEntry is a word in a learner's personal list
type VocabularyEntry struct {
	ID           int64
	UserID       int64
	Word         string
	Meaning      string
	Example      *string
	Translation  *string
	Language     string
	Difficulty   Level
	Mastered     bool
	ReviewCount  int
	CreatedAt    time.Time
	LastReviewed *time.Time
}

// VocabularyStats summarizes a learner's list
type VocabularyStats struct {
	Total       int
	Mastered    int
	Learning    int
	MasteryRate float64
}
