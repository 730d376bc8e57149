package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayStats_DateString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "2024-12-12",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := DayStats{Date: tt.date}
			assert.Equal(t, tt.expected, day.DateString())
		})
	}
}

func TestDayStats_DisplayString(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			expected: "Yesterday",
		},
		{
			name:     "two days ago",
			date:     time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
			expected: "Thu 13 Jun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := DayStats{Date: tt.date}
			assert.Equal(t, tt.expected, day.DisplayString(now))
		})
	}
}
