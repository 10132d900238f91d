package printers

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/glyph"
	"tableflip.dev/sidekick/pkg/notify"
)

// Stats prints the counts of one day.
func (pp *PrettyPrint) Stats(s app.DayStats) {
	bold := color.New(color.Bold)

	pp.Title(formatDay(s.Date))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Intakes"), s.Counts.Intakes)
	tbl.AddRow(bold.Sprint("Check-ins"), s.Counts.Checkins)
	tbl.AddRow(bold.Sprint("Meals"), s.Counts.Meals)
	tbl.AddRow(bold.Sprint("Notes"), s.Counts.Notes)
	tbl.AddRow(bold.Sprint("Feed entries"), s.Counts.Logs)

	sleep := "not logged"
	if s.SleepQuality > 0 {
		sleep = fmt.Sprintf("%d/%d", s.SleepQuality, entry.MaxRating)
	}
	tbl.AddRow(bold.Sprint("Sleep"), sleep)

	last := "none"
	if s.LatestIntake != nil {
		last = fmt.Sprintf("%s at %s",
			entry.FormatDose(s.LatestIntake.DoseMg, s.LatestIntake.WithFood),
			s.LatestIntake.Timestamp.Time().Format(layoutClock))
	}
	tbl.AddRow(bold.Sprint("Last intake"), last)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Settings prints reminder toggles, the metabolism offset and the intake
// defaults.
func (pp *PrettyPrint) Settings(v app.SettingsView) {
	bold := color.New(color.Bold)
	on := color.New(color.FgHiGreen)
	off := color.New(color.Faint)

	pp.Title("Reminders")
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range entry.SettingKeys {
		enabled, _ := v.Notifications.Get(k)
		state := off.Sprint("off")
		if enabled {
			state = on.Sprint("on")
		}
		tbl.AddRow(bold.Sprint(string(k)), k.Label(), state)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.Title("Defaults")
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("offset"), strconv.Itoa(v.OffsetMinutes)+" min")
	tbl.AddRow(bold.Sprint("dose"), entry.FormatDose(v.LastDose, v.LastWithFood))
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Legend prints the glyph of every feed kind.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(kindColorByKey(g.Key).Sprint(g.Symbol), g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Reminder prints a delivered reminder as a banner.
func (pp *PrettyPrint) Reminder(r notify.Reminder) {
	banner := color.New(color.FgBlack, color.BgHiYellow, color.Bold)
	_, _ = banner.Fprintf(pp.out(), " %s ", r.Title)
	_, _ = fmt.Fprintf(pp.out(), " %s %s\n", r.At.Format(layoutClock), r.Body)
}
