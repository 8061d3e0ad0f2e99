package models

import (
	"fmt"
	"time"
)

// Clock times are stored as "HH:MM" strings and compared as minutes
// since midnight, so a span never silently crosses a date boundary.

// ParseClock converts "HH:MM" (or "HH:MM:SS") into minutes since midnight.
func ParseClock(s string) (int, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); err != nil {
		second = 0
		if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders the time-of-day part of t as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatMinutes renders minutes since midnight as a zero-padded
// "HH:MM", the canonical stored form.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateOnly strips the time-of-day from t, pinning the calendar date at
// UTC midnight so stored dates compare consistently.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameDay compares only the calendar dates of a and b.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
