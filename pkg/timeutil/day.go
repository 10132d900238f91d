// Package timeutil has the calendar arithmetic shared by the feed, the
// report and the effect marker. Everything works in local time.
package timeutil

import (
	"time"
)

const layoutDateKey = "2006-01-02"

// DateKey returns the YYYY-MM-DD key of t's local calendar date.
func DateKey(t time.Time) string {
	return t.Local().Format(layoutDateKey)
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// EndOfDay returns the last millisecond of t's local day.
func EndOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// DaysBack returns the local calendar day i days before t, at midnight.
// Walking by calendar date keeps DST days intact.
func DaysBack(t time.Time, i int) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day()-i, 0, 0, 0, 0, time.Local)
}

// HoursBetween returns a-b in fractional hours.
func HoursBetween(a, b time.Time) float64 {
	return a.Sub(b).Hours()
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
