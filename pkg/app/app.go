package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/store"
)

// Service provides high-level operations on the journal.
// It wraps persistence and the journal store so the CLI and the MCP server
// share one load, mutate, save path.
type Service struct {
	Persistence store.Persistence
	// Scheduler receives intake reminders. Nil means no reminders.
	Scheduler journal.Scheduler
	// Now replaces time.Now.
	Now func() time.Time

	// mu serializes mutate within this process; persistence that implements
	// store.Locker also excludes other processes.
	mu sync.Mutex
}

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	// ErrNotFound is returned when an id matches nothing.
	ErrNotFound = errors.New("app: not found")
	// ErrRejected is returned when input was invalid and nothing was stored.
	ErrRejected = errors.New("app: rejected")
)

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) load(ctx context.Context) (journal.State, error) {
	if s.Persistence == nil {
		return journal.State{}, ErrNoPersistence
	}
	state, err := s.Persistence.Load(ctx)
	if err != nil {
		return journal.State{}, err
	}
	return *state, nil
}

// mutate runs fn against a journal store over the stored state and saves the
// result. Nothing is saved when fn fails. The whole load, mutate, save runs
// under the service lock and, when available, the persistence lock.
func (s *Service) mutate(ctx context.Context, fn func(*journal.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.Persistence.(store.Locker); ok {
		unlock, err := l.Lock(ctx)
		if err != nil {
			return err
		}
		defer unlock()
	}

	state, err := s.load(ctx)
	if err != nil {
		return err
	}
	js := journal.New(&state, s.Scheduler, journal.WithClock(s.now))
	if err := fn(js); err != nil {
		return err
	}
	next := js.Snapshot()
	return s.Persistence.Save(ctx, &next)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// TakeMedication records an intake. A zero timestamp means now.
func (s *Service) TakeMedication(ctx context.Context, in journal.IntakeInput) (entry.Intake, error) {
	var out entry.Intake
	err := s.mutate(ctx, func(js *journal.Store) error {
		intake, ok := js.LogMedication(ctx, in)
		if !ok {
			return entry.ErrInvalidDose
		}
		out = intake
		return nil
	})
	return out, err
}

// EditMedication applies u to the intake with the given id.
func (s *Service) EditMedication(ctx context.Context, id string, u journal.IntakeUpdate) (entry.Intake, error) {
	var out entry.Intake
	err := s.mutate(ctx, func(js *journal.Store) error {
		intake, ok := js.UpdateMedication(ctx, id, u)
		if !ok {
			return ErrNotFound
		}
		out = intake
		return nil
	})
	return out, err
}

// Checkin records ratings and a note. Empty check-ins are stored; callers
// that want to refuse them check entry.Checkin.Empty first.
func (s *Service) Checkin(ctx context.Context, values entry.Ratings, note string, at time.Time) (entry.Checkin, error) {
	var out entry.Checkin
	err := s.mutate(ctx, func(js *journal.Store) error {
		out = js.LogCheckin(values, note, at)
		return nil
	})
	return out, err
}

// Meal records a meal.
func (s *Service) Meal(ctx context.Context, t entry.MealType, description string, at time.Time) (entry.Meal, error) {
	var out entry.Meal
	err := s.mutate(ctx, func(js *journal.Store) error {
		m, ok := js.LogMeal(t, description, at)
		if !ok {
			return ErrRejected
		}
		out = m
		return nil
	})
	return out, err
}

// Note records a free-text note.
func (s *Service) Note(ctx context.Context, content string, at time.Time) (entry.Note, error) {
	var out entry.Note
	err := s.mutate(ctx, func(js *journal.Store) error {
		n, ok := js.LogNoteAt(content, at)
		if !ok {
			return ErrRejected
		}
		out = n
		return nil
	})
	return out, err
}

// Sleep stores the sleep quality of date's day.
func (s *Service) Sleep(ctx context.Context, date time.Time, quality int) (entry.DayContext, error) {
	if quality < entry.MinRating || quality > entry.MaxRating {
		return entry.DayContext{}, ErrRejected
	}
	if date.IsZero() {
		date = s.now()
	}
	var out entry.DayContext
	err := s.mutate(ctx, func(js *journal.Store) error {
		out = js.SetDayContext(date, &quality)
		return nil
	})
	return out, err
}

// SetReminder flips one reminder toggle.
func (s *Service) SetReminder(ctx context.Context, key entry.SettingKey, on bool) (entry.NotificationSettings, error) {
	var out entry.NotificationSettings
	err := s.mutate(ctx, func(js *journal.Store) error {
		if !js.SetNotificationSetting(ctx, key, on) {
			return ErrRejected
		}
		out = js.Settings()
		return nil
	})
	return out, err
}

// SetOffset stores the metabolism offset and returns the clamped value.
func (s *Service) SetOffset(ctx context.Context, minutes int) (int, error) {
	var out int
	err := s.mutate(ctx, func(js *journal.Store) error {
		out = js.SetMetabolismOffset(minutes)
		return nil
	})
	return out, err
}
