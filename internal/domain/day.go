package domain

import "time"

// DayStats holds activity counts for one UTC calendar day
type DayStats struct {
	Date          time.Time
	Conversations int
	WordsAdded    int
}

// DateString returns date in YYYY-MM-DD format
func (d DayStats) DateString() string {
	return d.Date.Format("2006-01-02")
}

// DisplayString returns a short label relative to now
func (d DayStats) DisplayString(now time.Time) string {
	date := d.Date.UTC()
	now = now.UTC()

	if sameDay(date, now) {
		return "Today"
	}
	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return date.Format("Mon 2 Jan")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
