package app

import (
	"context"
	"time"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/effect"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/report"
	"tableflip.dev/sidekick/pkg/timeutil"
)

// Logs returns the activity feed between the provided bounds, newest first.
func (s *Service) Logs(ctx context.Context, since, until time.Time) ([]activity.Entry, error) {
	if since.After(until) {
		since, until = until, since
	}
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return activity.BuildLogsForRange(state, entry.FromTime(since), entry.FromTime(until)), nil
}

// Export renders the Markdown report of the last days calendar days.
func (s *Service) Export(ctx context.Context, days int) (string, error) {
	state, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return report.BuildExportMarkdown(days, state, s.now()), nil
}

// CurveOptions overrides the inputs of the effect curve.
type CurveOptions struct {
	Dose          *entry.Dose
	OffsetMinutes *int
}

// CurveResult is the effect curve of today's latest intake.
type CurveResult struct {
	// Intake is nil when nothing was taken today.
	Intake        *entry.Intake
	Dose          entry.Dose
	OffsetMinutes int
	Points        []effect.Point
	Marker        effect.Marker
	// Current is the effect at the marker, zero when inactive.
	Current float64
}

// Curve samples the effect curve for today's latest intake, falling back to
// the last used dose when nothing was taken today.
func (s *Service) Curve(ctx context.Context, opts CurveOptions) (CurveResult, error) {
	state, err := s.load(ctx)
	if err != nil {
		return CurveResult{}, err
	}
	now := s.now()

	res := CurveResult{
		Dose:          state.LastDoseMg,
		OffsetMinutes: state.MetabolismOffsetMinutes,
	}
	var takenAt *time.Time
	if in, ok := latestToday(state, now); ok {
		res.Intake = &in
		res.Dose = in.DoseMg
		t := in.Timestamp.Time()
		takenAt = &t
	}
	if opts.Dose != nil {
		if !opts.Dose.Valid() {
			return CurveResult{}, entry.ErrInvalidDose
		}
		res.Dose = *opts.Dose
	}
	if opts.OffsetMinutes != nil {
		res.OffsetMinutes = journal.ClampOffset(*opts.OffsetMinutes)
	}

	offset := float64(res.OffsetMinutes)
	res.Points = effect.BuildEffectPoints(res.Dose, offset)
	res.Marker = effect.CurrentMarker(takenAt, offset, now)
	if res.Marker.IsActive {
		res.Current = effect.EffectAt(res.Marker.CurrentHour, offset, res.Dose)
	}
	return res, nil
}

// DayStats summarizes one calendar day.
type DayStats struct {
	Date   time.Time
	Counts activity.Counts
	// LatestIntake is nil when nothing was taken that day.
	LatestIntake *entry.Intake
	// SleepQuality is zero when no morning check was logged.
	SleepQuality int
}

// Stats counts what was logged on day's calendar day.
func (s *Service) Stats(ctx context.Context, day time.Time) (DayStats, error) {
	state, err := s.load(ctx)
	if err != nil {
		return DayStats{}, err
	}
	if day.IsZero() {
		day = s.now()
	}
	start := entry.FromTime(timeutil.StartOfDay(day))
	end := entry.FromTime(timeutil.EndOfDay(day))

	out := DayStats{
		Date:   timeutil.StartOfDay(day),
		Counts: activity.CountRange(state, start, end),
	}
	if in, ok := journal.LatestIntake(state, start, end); ok {
		out.LatestIntake = &in
	}
	if dc, ok := state.DayContexts[timeutil.DateKey(day)]; ok && dc.HasSleep() {
		out.SleepQuality = dc.SleepQuality
	}
	return out, nil
}

// SettingsView is the current configuration stored in the journal.
type SettingsView struct {
	Notifications entry.NotificationSettings
	OffsetMinutes int
	LastDose      entry.Dose
	LastWithFood  bool
}

// Settings returns the stored reminder toggles, offset and intake defaults.
func (s *Service) Settings(ctx context.Context) (SettingsView, error) {
	state, err := s.load(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	return SettingsView{
		Notifications: state.NotificationSettings,
		OffsetMinutes: state.MetabolismOffsetMinutes,
		LastDose:      state.LastDoseMg,
		LastWithFood:  state.LastWithFood,
	}, nil
}

func latestToday(state journal.State, now time.Time) (entry.Intake, bool) {
	return journal.LatestIntake(state,
		entry.FromTime(timeutil.StartOfDay(now)),
		entry.FromTime(timeutil.EndOfDay(now)))
}
