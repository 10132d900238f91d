package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/effect"
	"tableflip.dev/sidekick/pkg/entry"
)

func init() {
	color.NoColor = true
}

func ts(day, hour int) entry.Timestamp {
	return entry.FromTime(time.Date(2026, time.October, day, hour, 0, 0, 0, time.Local))
}

func TestFeedGroupsByDay(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Feed([]activity.Entry{
		{ID: "note-1", Kind: activity.KindNote, Label: "calm", Value: "calm", Timestamp: ts(15, 9)},
		{ID: "med-1", Kind: activity.KindMedication, Label: "Medication", Value: "10 mg, with food", Timestamp: ts(15, 8)},
		{ID: "meal-1", Kind: activity.KindMeal, Label: "Dinner", Value: "pasta", Timestamp: ts(14, 19)},
	})
	out := buf.String()

	if got := strings.Count(out, " entries"); got != 1 {
		t.Fatalf("expected one multi-entry day title, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Thursday, October 15 - 2 entries") {
		t.Fatalf("missing today title:\n%s", out)
	}
	if !strings.Contains(out, "Wednesday, October 14 - 1 entry") {
		t.Fatalf("missing yesterday title:\n%s", out)
	}
	if strings.Index(out, "09:00") > strings.Index(out, "08:00") {
		t.Fatalf("feed order not preserved:\n%s", out)
	}
	if strings.Contains(out, "note-1") {
		t.Fatalf("ids printed without ShowID:\n%s", out)
	}
}

func TestFeedShowsIDs(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Entries(activity.Entry{ID: "chk-7", Kind: activity.KindCheckin, Label: "Check-in", Value: "Mood: 3/5", Timestamp: ts(15, 10)})
	if !strings.HasPrefix(buf.String(), "chk-7") {
		t.Fatalf("expected id prefix, got %q", buf.String())
	}
}

func TestFeedEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Feed(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected placeholder, got %q", buf.String())
	}
}

func TestCurveMarksNow(t *testing.T) {
	var buf bytes.Buffer
	in := entry.Intake{ID: "i", Timestamp: ts(15, 8), DoseMg: entry.DoseLow, WithFood: true}
	(&PrettyPrint{Out: &buf}).Curve(app.CurveResult{
		Intake: &in,
		Dose:   entry.DoseLow,
		Points: effect.BuildEffectPoints(entry.DoseLow, 0),
		Marker: effect.Marker{CurrentHour: 1.4, IsActive: true},
	})
	out := buf.String()
	if strings.Count(out, "◀ now") != 1 {
		t.Fatalf("expected exactly one marker:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "◀ now") && !strings.Contains(line, "1.5h") {
			t.Fatalf("marker on wrong row: %q", line)
		}
	}
}

func TestSettingsListsEveryToggle(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Settings(app.SettingsView{
		Notifications: entry.NotificationSettings{MealReminder: true},
		OffsetMinutes: 15,
		LastDose:      entry.DoseHigh,
	})
	out := buf.String()
	for _, k := range entry.SettingKeys {
		if !strings.Contains(out, string(k)) {
			t.Fatalf("missing %s:\n%s", k, out)
		}
	}
	if !strings.Contains(out, "20 mg, without food") || !strings.Contains(out, "15 min") {
		t.Fatalf("missing defaults:\n%s", out)
	}
}
