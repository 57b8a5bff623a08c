package workweek

import (
	"fmt"
	"time"
)

// Reporting windows supported by the team rollup.
const (
	WindowCurrentWeek = "current_week"
	WindowLastWeek    = "last_week"
	WindowLastNWeeks  = "last_n_weeks"
	WindowLastMonth   = "last_month"
)

// MaxWeeksBack caps the last_n_weeks window.
const MaxWeeksBack = 12

// Normalize truncates t to midnight UTC. All calendar math in this package
// works on normalized dates.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := Normalize(t)
	// time.Weekday counts Sunday as 0, the week here starts on Monday
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return Normalize(weekStart).AddDate(0, 0, 6)
}

// Contains reports whether date falls inside the Monday-Sunday window
// starting at weekStart.
func Contains(weekStart, date time.Time) bool {
	d := Normalize(date)
	start := Normalize(weekStart)
	return !d.Before(start) && !d.After(WeekEnd(start))
}

// WeeksBack returns the n week starts ending at the week containing today,
// newest first.
func WeeksBack(today time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	starts := make([]time.Time, 0, n)
	start := WeekStart(today)
	for i := 0; i < n; i++ {
		starts = append(starts, start.AddDate(0, 0, -7*i))
	}
	return starts
}

// ResolveWindow maps a named reporting window to a [from, to] date range
// relative to today. weeksBack is only consulted for last_n_weeks.
func ResolveWindow(window string, weeksBack int, today time.Time) (time.Time, time.Time, error) {
	day := Normalize(today)

	switch window {
	case WindowCurrentWeek:
		start := WeekStart(day)
		return start, WeekEnd(start), nil
	case WindowLastWeek:
		start := WeekStart(day).AddDate(0, 0, -7)
		return start, WeekEnd(start), nil
	case WindowLastNWeeks:
		if weeksBack < 1 {
			weeksBack = 1
		}
		if weeksBack > MaxWeeksBack {
			weeksBack = MaxWeeksBack
		}
		starts := WeeksBack(day, weeksBack)
		return starts[len(starts)-1], WeekEnd(starts[0]), nil
	case WindowLastMonth:
		firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		start := firstOfMonth.AddDate(0, -1, 0)
		end := firstOfMonth.AddDate(0, 0, -1)
		return start, end, nil
	}

	return time.Time{}, time.Time{}, fmt.Errorf("unknown reporting window: %q", window)
}
