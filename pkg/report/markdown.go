// Package report renders a multi-day plain text summary of the journal,
// meant to be pasted into an external analysis tool.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/timeutil"
)

const (
	layoutDay  = "2006-01-02"
	layoutTime = "15:04"

	// Sleep logged without a time is placed at 07:00.
	sleepFallback = 7 * time.Hour
)

// Line is one timeline entry of a day.
type Line struct {
	Timestamp entry.Timestamp
	Label     string
}

// Day is the forward-chronological timeline of one calendar day.
type Day struct {
	Date  time.Time
	Lines []Line
}

// Days builds timelines for the n calendar days ending today, today first.
// n below one is treated as one.
func Days(n int, state journal.State, now time.Time) []Day {
	if n < 1 {
		n = 1
	}
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		date := timeutil.DaysBack(now, i)
		days = append(days, Day{Date: date, Lines: timeline(state, date)})
	}
	return days
}

func timeline(state journal.State, date time.Time) []Line {
	dayStart := timeutil.StartOfDay(date)
	start := entry.FromTime(dayStart)
	end := entry.FromTime(timeutil.EndOfDay(date))

	var lines []Line
	for _, in := range state.Intakes {
		if in.Timestamp.Within(start, end) {
			lines = append(lines, Line{in.Timestamp, "Intake " + entry.FormatDose(in.DoseMg, in.WithFood)})
		}
	}
	for _, m := range state.Meals {
		if m.Timestamp.Within(start, end) {
			lines = append(lines, Line{m.Timestamp, m.Type.Label() + ": " + m.Description})
		}
	}
	for _, c := range state.Checkins {
		if !c.Timestamp.Within(start, end) || c.Empty() {
			continue
		}
		label := "Check-in"
		if values := entry.FormatRatings(c.Values, " "); values != "" {
			label += " " + values
		}
		if c.Note != "" {
			label += " (Note: " + c.Note + ")"
		}
		lines = append(lines, Line{c.Timestamp, label})
	}
	for _, n := range state.Notes {
		if n.Timestamp.Within(start, end) {
			lines = append(lines, Line{n.Timestamp, "Note: " + n.Content})
		}
	}
	if dc, ok := state.DayContexts[timeutil.DateKey(date)]; ok && dc.HasSleep() {
		ts := dc.SleepLoggedAt
		if ts.IsZero() {
			ts = entry.FromTime(dayStart.Add(sleepFallback))
		}
		lines = append(lines, Line{ts, fmt.Sprintf("Morning check: sleep quality %d/%d", dc.SleepQuality, entry.MaxRating)})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Timestamp < lines[j].Timestamp
	})
	return lines
}

// BuildExportMarkdown renders the last days calendar days, today first, as
// Markdown-like text.
func BuildExportMarkdown(days int, state journal.State, now time.Time) string {
	timelines := Days(days, state, now)

	var b strings.Builder
	fmt.Fprintf(&b, "# Sidekick report (%d %s)\n\n", len(timelines), plural(len(timelines), "day", "days"))

	for _, day := range timelines {
		fmt.Fprintf(&b, "## %s\n\n", day.Date.Format(layoutDay))
		if len(day.Lines) == 0 {
			b.WriteString("- No entries\n\n")
			continue
		}
		for _, l := range day.Lines {
			fmt.Fprintf(&b, "- %s %s\n", l.Timestamp.Time().Format(layoutTime), l.Label)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("Note: this report is intended for analysis by an external AI agent.")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
