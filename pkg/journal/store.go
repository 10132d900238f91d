// Package journal is the single writer of sidekick state. Every change to
// intakes, check-ins, meals, notes, day contexts and settings goes through a
// Store; readers work on snapshots.
package journal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/timeutil"
)

const (
	// MinOffsetMinutes and MaxOffsetMinutes bound the metabolism offset.
	MinOffsetMinutes = -60
	MaxOffsetMinutes = 60

	// Intakes older than this are left alone when reminders are re-derived.
	rescheduleGrace = 60 * time.Second
)

// Scheduler arranges the reminders that belong to an intake. All calls are
// best effort: a denied permission or a failed call never blocks a write.
type Scheduler interface {
	EnsurePermission(ctx context.Context) bool
	Schedule(ctx context.Context, intake entry.Intake, settings entry.NotificationSettings) ([]string, error)
	Cancel(ctx context.Context, ids []string)
}

// Store owns a State and is the only thing allowed to change it.
//
// Scheduler calls are made without holding the lock and their results are
// written back by intake id afterwards. Two overlapping calls touching the
// same intake can therefore race on its notification ids; the last write
// wins.
type Store struct {
	mu        sync.Mutex
	state     State
	scheduler Scheduler
	now       func() time.Time
	newID     func() string
	log       *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger used for scheduling diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) { s.log = log }
}

// New wraps state. A nil state starts an empty journal; a nil scheduler
// behaves as if notification permission was denied.
func New(state *State, scheduler Scheduler, opts ...Option) *Store {
	if state == nil {
		state = NewState()
	}
	s := &Store{
		state:     state.Clone(),
		scheduler: scheduler,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       logrus.WithField("component", "journal"),
	}
	s.state.Normalize()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Settings returns the current reminder toggles.
func (s *Store) Settings() entry.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NotificationSettings
}

// MetabolismOffset returns the stored offset in minutes.
func (s *Store) MetabolismOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.MetabolismOffsetMinutes
}

// Defaults returns the dose and food flag of the most recent intake form.
func (s *Store) Defaults() (entry.Dose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastDoseMg, s.state.LastWithFood
}

// IntakeInput describes a new intake.
type IntakeInput struct {
	Timestamp entry.Timestamp
	Dose      entry.Dose
	WithFood  bool
	Note      string
}

// LogMedication records an intake and asks the scheduler for its reminders.
// Only an unknown dose is rejected.
func (s *Store) LogMedication(ctx context.Context, in IntakeInput) (entry.Intake, bool) {
	if !in.Dose.Valid() {
		return entry.Intake{}, false
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = entry.FromTime(s.now())
	}
	intake := entry.Intake{
		ID:        s.newID(),
		Timestamp: ts,
		DoseMg:    in.Dose,
		WithFood:  in.WithFood,
		Note:      strings.TrimSpace(in.Note),
	}

	intake.NotificationIDs = s.schedule(ctx, intake, s.Settings())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Intakes = append([]entry.Intake{intake}, s.state.Intakes...)
	s.state.LastDoseMg = intake.DoseMg
	s.state.LastWithFood = intake.WithFood
	return cloneIntake(intake), true
}

// IntakeUpdate is a partial edit of an intake; nil fields are kept.
type IntakeUpdate struct {
	Timestamp *entry.Timestamp
	Dose      *entry.Dose
	WithFood  *bool
	Note      *string
}

func (u IntakeUpdate) apply(in entry.Intake) entry.Intake {
	if u.Timestamp != nil && !u.Timestamp.IsZero() {
		in.Timestamp = *u.Timestamp
	}
	if u.Dose != nil && u.Dose.Valid() {
		in.DoseMg = *u.Dose
	}
	if u.WithFood != nil {
		in.WithFood = *u.WithFood
	}
	if u.Note != nil {
		in.Note = strings.TrimSpace(*u.Note)
	}
	return in
}

// UpdateMedication edits the intake with the given id in place, replacing its
// reminders. An unknown id changes nothing and reports false.
func (s *Store) UpdateMedication(ctx context.Context, id string, u IntakeUpdate) (entry.Intake, bool) {
	s.mu.Lock()
	idx := s.state.intakeIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return entry.Intake{}, false
	}
	existing := cloneIntake(s.state.Intakes[idx])
	s.mu.Unlock()

	if s.scheduler != nil {
		s.scheduler.Cancel(ctx, existing.NotificationIDs)
	}

	updated := u.apply(existing)
	updated.ID = existing.ID
	updated.NotificationIDs = s.schedule(ctx, updated, s.Settings())

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx = s.state.intakeIndex(id); idx < 0 {
		return entry.Intake{}, false
	}
	s.state.Intakes[idx] = updated
	s.state.LastDoseMg = updated.DoseMg
	s.state.LastWithFood = updated.WithFood
	return cloneIntake(updated), true
}

// LogCheckin records ratings and an optional note. Unset or out-of-range
// ratings are dropped. A zero at means now.
//
// An entirely empty check-in is still stored; callers decide whether that is
// worth recording. Empty check-ins never show up in the feed or report.
func (s *Store) LogCheckin(values entry.Ratings, note string, at time.Time) entry.Checkin {
	c := entry.Checkin{
		ID:        s.newID(),
		Timestamp: s.stamp(at),
		Values:    values.Clean(),
		Note:      strings.TrimSpace(note),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Checkins = append([]entry.Checkin{c}, s.state.Checkins...)
	return c
}

// LogMeal records a meal. Blank descriptions and unknown slots are rejected.
func (s *Store) LogMeal(t entry.MealType, description string, at time.Time) (entry.Meal, bool) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return entry.Meal{}, false
	}
	if _, err := entry.ParseMealType(string(t)); err != nil {
		return entry.Meal{}, false
	}
	m := entry.Meal{
		ID:          s.newID(),
		Timestamp:   s.stamp(at),
		Type:        t,
		Description: entry.Truncate(trimmed, entry.MaxMealDescription),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Meals = append([]entry.Meal{m}, s.state.Meals...)
	return m, true
}

// LogNote records a note stamped now. Blank content is rejected; long
// content is cut to 500 characters.
func (s *Store) LogNote(content string) (entry.Note, bool) {
	return s.LogNoteAt(content, time.Time{})
}

// LogNoteAt is LogNote with an explicit time. A zero at means now.
func (s *Store) LogNoteAt(content string, at time.Time) (entry.Note, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return entry.Note{}, false
	}
	n := entry.Note{
		ID:        s.newID(),
		Timestamp: s.stamp(at),
		Content:   entry.Truncate(trimmed, entry.MaxNoteContent),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notes = append([]entry.Note{n}, s.state.Notes...)
	return n, true
}

// SetDayContext upserts the context of date's local day. With a sleep
// quality (1-5) it also stamps when it was logged; without one the stored
// values are kept.
func (s *Store) SetDayContext(date time.Time, sleepQuality *int) entry.DayContext {
	key := timeutil.DateKey(date)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	dc := s.state.DayContexts[key]
	dc.DateKey = key
	if sleepQuality != nil && *sleepQuality >= entry.MinRating && *sleepQuality <= entry.MaxRating {
		dc.SleepQuality = *sleepQuality
		dc.SleepLoggedAt = entry.FromTime(now)
	}
	s.state.DayContexts[key] = dc
	return dc
}

// SetNotificationSetting flips one reminder toggle and re-derives the
// reminders of every intake that is not more than a minute old. Unknown keys
// are ignored.
func (s *Store) SetNotificationSetting(ctx context.Context, key entry.SettingKey, value bool) bool {
	s.mu.Lock()
	next, ok := s.state.NotificationSettings.With(key, value)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.state.NotificationSettings = next
	s.mu.Unlock()

	s.reschedule(ctx, next, entry.FromTime(s.now().Add(-rescheduleGrace)))
	return true
}

// RefreshNotifications re-derives reminders under the current settings for
// every intake taken at or after since and reports how many intakes were
// touched.
func (s *Store) RefreshNotifications(ctx context.Context, since time.Time) int {
	return s.reschedule(ctx, s.Settings(), entry.FromTime(since))
}

// SetMetabolismOffset stores the offset clamped to [-60, 60] minutes.
func (s *Store) SetMetabolismOffset(minutes int) int {
	v := ClampOffset(minutes)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MetabolismOffsetMinutes = v
	return v
}

// ClampOffset bounds a metabolism offset to [-60, 60] minutes.
func ClampOffset(minutes int) int {
	if minutes < MinOffsetMinutes {
		return MinOffsetMinutes
	}
	if minutes > MaxOffsetMinutes {
		return MaxOffsetMinutes
	}
	return minutes
}

// LatestIntake returns the intake with the newest timestamp.
func (s *Store) LatestIntake() (entry.Intake, bool) {
	return s.LatestIntakeBetween(0, entry.MaxTimestamp)
}

// LatestIntakeBetween returns the newest intake inside [start, end].
func (s *Store) LatestIntakeBetween(start, end entry.Timestamp) (entry.Intake, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LatestIntake(s.state, start, end)
}

// LatestIntake finds the newest intake of state inside [start, end].
func LatestIntake(state State, start, end entry.Timestamp) (entry.Intake, bool) {
	var (
		latest entry.Intake
		found  bool
	)
	for _, in := range state.Intakes {
		if !in.Timestamp.Within(start, end) {
			continue
		}
		if !found || in.Timestamp > latest.Timestamp {
			latest = in
			found = true
		}
	}
	return cloneIntake(latest), found
}

func (s *Store) stamp(at time.Time) entry.Timestamp {
	if at.IsZero() {
		at = s.now()
	}
	return entry.FromTime(at)
}

// schedule asks for permission and then for the intake's reminders.
func (s *Store) schedule(ctx context.Context, intake entry.Intake, settings entry.NotificationSettings) []string {
	if s.scheduler == nil || !s.scheduler.EnsurePermission(ctx) {
		s.log.WithField("intake", intake.ID).Debug("notification permission denied, storing without reminders")
		return nil
	}
	return s.scheduleAllowed(ctx, intake, settings)
}

func (s *Store) scheduleAllowed(ctx context.Context, intake entry.Intake, settings entry.NotificationSettings) []string {
	ids, err := s.scheduler.Schedule(ctx, intake, settings)
	if err != nil {
		s.log.WithError(err).WithField("intake", intake.ID).Warn("scheduling reminders failed")
		s.scheduler.Cancel(ctx, ids)
		return nil
	}
	return ids
}

func (s *Store) reschedule(ctx context.Context, settings entry.NotificationSettings, threshold entry.Timestamp) int {
	if s.scheduler == nil || !s.scheduler.EnsurePermission(ctx) {
		return 0
	}

	s.mu.Lock()
	targets := make([]entry.Intake, 0, len(s.state.Intakes))
	for _, in := range s.state.Intakes {
		if in.Timestamp < threshold {
			continue
		}
		targets = append(targets, cloneIntake(in))
	}
	s.mu.Unlock()

	fresh := make(map[string][]string, len(targets))
	for _, in := range targets {
		s.scheduler.Cancel(ctx, in.NotificationIDs)
		fresh[in.ID] = s.scheduleAllowed(ctx, in, settings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	touched := 0
	for id, ids := range fresh {
		if idx := s.state.intakeIndex(id); idx >= 0 {
			s.state.Intakes[idx].NotificationIDs = ids
			touched++
		}
	}
	s.log.WithField("intakes", touched).Debug("reminders re-derived")
	return touched
}

func cloneIntake(in entry.Intake) entry.Intake {
	in.NotificationIDs = append([]string(nil), in.NotificationIDs...)
	return in
}
