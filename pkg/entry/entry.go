// Package entry holds the records a sidekick journal is made of.
package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dose is a medication dose in milligrams. Only DoseLow and DoseHigh exist.
type Dose int

const (
	DoseLow  Dose = 10
	DoseHigh Dose = 20
)

var ErrInvalidDose = errors.New("entry: dose must be 10 or 20 mg")

// Valid reports whether d is one of the known doses.
func (d Dose) Valid() bool {
	return d == DoseLow || d == DoseHigh
}

// ParseDose accepts "10", "20", "10mg" or "20 mg".
func ParseDose(s string) (Dose, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "mg"))
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDose, s)
	}
	d := Dose(v)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDose, v)
	}
	return d, nil
}

// Intake is a single logged medication intake. It is the only record that
// can be edited after it was created.
type Intake struct {
	ID              string    `json:"id"`
	Timestamp       Timestamp `json:"timestamp"`
	DoseMg          Dose      `json:"doseMg"`
	WithFood        bool      `json:"withFood"`
	Note            string    `json:"note,omitempty"`
	NotificationIDs []string  `json:"notificationIds,omitempty"`
}

// Checkin is a mood/focus rating snapshot.
type Checkin struct {
	ID        string    `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
	Values    Ratings   `json:"values"`
	Note      string    `json:"note,omitempty"`
}

// Empty reports whether the check-in has neither ratings nor a note.
func (c Checkin) Empty() bool {
	return c.Values.Empty() && strings.TrimSpace(c.Note) == ""
}

// Meal is a logged meal in one of the fixed daily slots.
type Meal struct {
	ID          string    `json:"id"`
	Timestamp   Timestamp `json:"timestamp"`
	Type        MealType  `json:"type"`
	Description string    `json:"description"`
}

// Note is a free-text journal note.
type Note struct {
	ID        string    `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
	Content   string    `json:"content"`
}

// DayContext carries per-day facts keyed by the local calendar date.
type DayContext struct {
	DateKey       string    `json:"dateKey"`
	SleepQuality  int       `json:"sleepQuality,omitempty"`
	SleepLoggedAt Timestamp `json:"sleepLoggedAt,omitempty"`
}

// HasSleep reports whether a sleep quality was recorded.
func (d DayContext) HasSleep() bool {
	return d.SleepQuality > 0
}

const (
	MaxMealDescription = 120
	MaxNoteContent     = 500
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
