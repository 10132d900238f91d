package activity

import (
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
)

// Counts are the per-kind totals shown by the stats view.
type Counts struct {
	Logs     int  `json:"logs"`
	Intakes  int  `json:"intakes"`
	Checkins int  `json:"checkins"`
	Meals    int  `json:"meals"`
	Notes    int  `json:"notes"`
	Sleep    bool `json:"sleepLogged"`
}

// CountRange counts what happened in [start, end]. Logs is the length of the
// feed for the same range; Checkins counts every stored check-in, including
// empty ones.
func CountRange(state journal.State, start, end entry.Timestamp) Counts {
	c := Counts{Logs: len(BuildLogsForRange(state, start, end))}
	for _, in := range state.Intakes {
		if in.Timestamp.Within(start, end) {
			c.Intakes++
		}
	}
	for _, ch := range state.Checkins {
		if ch.Timestamp.Within(start, end) {
			c.Checkins++
		}
	}
	for _, m := range state.Meals {
		if m.Timestamp.Within(start, end) {
			c.Meals++
		}
	}
	for _, n := range state.Notes {
		if n.Timestamp.Within(start, end) {
			c.Notes++
		}
	}
	for _, dc := range state.DayContexts {
		if dc.HasSleep() && dc.SleepLoggedAt.Within(start, end) {
			c.Sleep = true
		}
	}
	return c
}
