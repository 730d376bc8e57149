package domain

import "time"

// Overview is the all-time summary for a learner
type Overview struct {
	TotalStudyMinutes  int
	TotalConversations int
	TotalWords         int
	MasteredWords      int
	CurrentStreak      int
	TargetLanguage     string
	Level              Level
}

// TodayStats counts activity since UTC midnight
type TodayStats struct {
	Date             time.Time
	Conversations    int
	WordsAdded       int
	StudyTimeMinutes int // not tracked per day, always 0
	CurrentStreak    int
}

// Goal is the per-level target for conversations and vocabulary
type Goal struct {
	Conversations int
	Words         int
}

// GoalProgress tracks one metric against its goal
type GoalProgress struct {
	Current  int
	Goal     int
	Progress float64
}

// Progress reports how far a learner is toward the goals of their level
type Progress struct {
	Level         Level
	Conversations GoalProgress
	Vocabulary    GoalProgress
	Overall       float64
}
