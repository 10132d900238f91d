// Package notify turns intakes into reminders and schedules them.
package notify

import (
	"time"

	"tableflip.dev/sidekick/pkg/entry"
)

// Kind identifies one of the three intake reminders.
type Kind string

const (
	KindMeal    Kind = "meal"
	KindSnack   Kind = "snack"
	KindRebound Kind = "rebound"
)

const (
	MealDelay    = time.Minute
	SnackDelay   = 3*time.Hour + 30*time.Minute
	ReboundDelay = 8 * time.Hour
)

// Reminder is a single planned notification.
type Reminder struct {
	Kind     Kind      `json:"kind"`
	IntakeID string    `json:"intakeId"`
	At       time.Time `json:"at"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
}

// Plan lists the reminders an intake should get under settings. The meal
// reminder only applies to intakes taken without food. Reminders due at or
// before now are dropped.
func Plan(intake entry.Intake, settings entry.NotificationSettings, now time.Time) []Reminder {
	base := intake.Timestamp.Time()
	candidates := make([]Reminder, 0, 3)

	if !intake.WithFood && settings.MealReminder {
		candidates = append(candidates, Reminder{
			Kind:  KindMeal,
			At:    base.Add(MealDelay),
			Title: "Time to eat",
			Body:  "Please eat something to keep the effect steady.",
		})
	}
	if settings.SnackReminder {
		candidates = append(candidates, Reminder{
			Kind:  KindSnack,
			At:    base.Add(SnackDelay),
			Title: "Snack reminder",
			Body:  "Time for a small snack during the transition phase.",
		})
	}
	if settings.ReboundReminder {
		candidates = append(candidates, Reminder{
			Kind:  KindRebound,
			At:    base.Add(ReboundDelay),
			Title: "Rebound ahead",
			Body:  "Watch out for rebound effects and plan some rest.",
		})
	}

	out := candidates[:0]
	for _, r := range candidates {
		if !r.At.After(now) {
			continue
		}
		r.IntakeID = intake.ID
		out = append(out, r)
	}
	return out
}
