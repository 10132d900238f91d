package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/entry"
)

const barWidth = 40

// Curve prints the sampled effect curve as a horizontal bar chart and marks
// the sample closest to now.
func (pp *PrettyPrint) Curve(res app.CurveResult) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	now := color.New(color.FgHiGreen, color.Bold)

	if res.Intake != nil {
		pp.Title(fmt.Sprintf("Effect curve, %s taken at %s",
			entry.FormatDose(res.Intake.DoseMg, res.Intake.WithFood),
			res.Intake.Timestamp.Time().Format(layoutClock)))
	} else {
		pp.Title(fmt.Sprintf("Effect curve, %d mg (no intake today)", res.Dose))
	}
	if res.OffsetMinutes != 0 {
		_, _ = faint.Fprintf(pp.out(), "metabolism offset %+d min\n", res.OffsetMinutes)
	}

	nearest := -1
	if res.Marker.IsActive {
		best := math.Inf(1)
		for i, p := range res.Points {
			if d := math.Abs(p.Hour - res.Marker.CurrentHour); d < best {
				best, nearest = d, i
			}
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Hour"), bold.Sprint("Effect"), "")
	for i, p := range res.Points {
		bar := strings.Repeat("█", int(math.Round(p.Effect/100*barWidth)))
		value := fmt.Sprintf("%5.1f", p.Effect)
		if i == nearest {
			tbl.AddRow(now.Sprintf("%4.1fh", p.Hour), now.Sprint(bar), now.Sprintf("%s  ◀ now", value))
			continue
		}
		tbl.AddRow(fmt.Sprintf("%4.1fh", p.Hour), bar, faint.Sprint(value))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	switch {
	case res.Intake == nil:
		_, _ = faint.Fprintln(pp.out(), "nothing taken today")
	case res.Marker.IsActive:
		_, _ = now.Fprintf(pp.out(), "now: hour %.1f, effect %.0f/100\n", res.Marker.CurrentHour, res.Current)
	default:
		_, _ = faint.Fprintln(pp.out(), "outside the effect window")
	}
}
