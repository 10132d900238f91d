package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/glyph"
	"tableflip.dev/sidekick/pkg/timeutil"
)

const layoutClock = "15:04"

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("meal-a0b1c2d3-e4f5-4789-abcd-0123456789ab  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Feed prints entries grouped under one title per local day, in the order
// given.
func (pp *PrettyPrint) Feed(entries []activity.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	var (
		day   string
		group []activity.Entry
	)
	flush := func() {
		if len(group) == 0 {
			return
		}
		pp.TitleWithCount(formatDay(group[0].Timestamp.Time()), len(group))
		pp.Entries(group...)
		group = group[:0]
	}
	for _, e := range entries {
		key := timeutil.DateKey(e.Timestamp.Time())
		if key != day {
			flush()
			day = key
		}
		group = append(group, e)
	}
	flush()
}

// Entries prints one line per entry: time, label and value.
func (pp *PrettyPrint) Entries(entries ...activity.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID)
			if pad := len(spacing) - len(e.ID); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			} else {
				_, _ = y.Fprint(pp.out(), " ")
			}
		}
		_, _ = f.Fprintf(pp.out(), "%s ", e.Timestamp.Time().Format(layoutClock))
		_, _ = kindColor(e.Kind).Fprintf(pp.out(), "%s %s", glyph.For(string(e.Kind)).Symbol, e.Label)
		_, _ = t.Fprintf(pp.out(), "  %s\n", e.Value)
	}
	_, _ = t.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func kindColor(k activity.Kind) *color.Color {
	return kindColorByKey(string(k))
}

func kindColorByKey(k string) *color.Color {
	switch activity.Kind(k) {
	case activity.KindMedication:
		return color.New(color.FgHiGreen, color.Bold)
	case activity.KindCheckin:
		return color.New(color.FgHiCyan)
	case activity.KindMeal:
		return color.New(color.FgHiYellow)
	case activity.KindSleep:
		return color.New(color.FgHiBlue)
	default:
		return color.New(color.FgWhite)
	}
}

func formatDay(t time.Time) string {
	return t.Format("Monday, January 2")
}
