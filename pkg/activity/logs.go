// Package activity merges the journal collections into one feed.
package activity

import (
	"sort"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
)

// Kind tags the origin of a feed entry.
type Kind string

const (
	KindMedication Kind = "medication"
	KindCheckin    Kind = "checkin"
	KindMeal       Kind = "meal"
	KindSleep      Kind = "sleep"
	KindNote       Kind = "note"
)

// Prefix is prepended to source ids so ids stay unique across kinds.
func (k Kind) Prefix() string {
	switch k {
	case KindMedication:
		return "med-"
	case KindCheckin:
		return "chk-"
	case KindMeal:
		return "meal-"
	case KindSleep:
		return "sleep-"
	case KindNote:
		return "note-"
	}
	return ""
}

const noteLabelLength = 30

// Entry is one row of the activity feed.
type Entry struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"type"`
	Label     string          `json:"label"`
	Value     string          `json:"value,omitempty"`
	Timestamp entry.Timestamp `json:"timestamp"`
}

// CheckinSummary renders the ratings and note of a check-in for the feed,
// e.g. "Mood: 4/5 · Note: slept badly". Empty check-ins yield "".
func CheckinSummary(c entry.Checkin) string {
	values := entry.FormatRatings(c.Values, ": ")
	switch {
	case values != "" && c.Note != "":
		return values + " · Note: " + c.Note
	case c.Note != "":
		return "Note: " + c.Note
	default:
		return values
	}
}

// NoteLabel shortens a note to 30 characters plus an ellipsis.
func NoteLabel(content string) string {
	if len([]rune(content)) > noteLabelLength {
		return entry.Truncate(content, noteLabelLength) + "..."
	}
	return content
}

// BuildLogsForRange collects every intake, check-in, meal and note with a
// timestamp in [start, end] and returns them newest first. Check-ins with
// neither ratings nor a note are left out.
func BuildLogsForRange(state journal.State, start, end entry.Timestamp) []Entry {
	logs := make([]Entry, 0, len(state.Intakes)+len(state.Checkins)+len(state.Meals)+len(state.Notes))

	for _, in := range state.Intakes {
		if !in.Timestamp.Within(start, end) {
			continue
		}
		logs = append(logs, Entry{
			ID:        KindMedication.Prefix() + in.ID,
			Kind:      KindMedication,
			Label:     entry.MedicationLabel,
			Value:     entry.FormatDose(in.DoseMg, in.WithFood),
			Timestamp: in.Timestamp,
		})
	}

	for _, c := range state.Checkins {
		if !c.Timestamp.Within(start, end) || c.Empty() {
			continue
		}
		logs = append(logs, Entry{
			ID:        KindCheckin.Prefix() + c.ID,
			Kind:      KindCheckin,
			Label:     "Check-in",
			Value:     CheckinSummary(c),
			Timestamp: c.Timestamp,
		})
	}

	for _, m := range state.Meals {
		if !m.Timestamp.Within(start, end) {
			continue
		}
		logs = append(logs, Entry{
			ID:        KindMeal.Prefix() + m.ID,
			Kind:      KindMeal,
			Label:     "Meal: " + m.Type.Label(),
			Value:     m.Description,
			Timestamp: m.Timestamp,
		})
	}

	for _, n := range state.Notes {
		if !n.Timestamp.Within(start, end) {
			continue
		}
		logs = append(logs, Entry{
			ID:        KindNote.Prefix() + n.ID,
			Kind:      KindNote,
			Label:     NoteLabel(n.Content),
			Timestamp: n.Timestamp,
		})
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp > logs[j].Timestamp
	})
	return logs
}

// SourceID strips the kind prefix from a feed id.
func SourceID(feedID string) (Kind, string) {
	for _, k := range []Kind{KindMedication, KindCheckin, KindMeal, KindSleep, KindNote} {
		p := k.Prefix()
		if len(feedID) > len(p) && feedID[:len(p)] == p {
			return k, feedID[len(p):]
		}
	}
	return "", feedID
}
