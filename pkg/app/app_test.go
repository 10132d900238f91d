package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
}

func newMemoryPersistence(state *journal.State) *memoryPersistence {
	mp := &memoryPersistence{}
	if state != nil {
		mp.data, _ = json.Marshal(state)
	}
	return mp
}

func (m *memoryPersistence) Load(context.Context) (*journal.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return journal.NewState(), nil
	}
	state := &journal.State{}
	if err := json.Unmarshal(m.data, state); err != nil {
		return nil, err
	}
	state.Normalize()
	return state, nil
}

func (m *memoryPersistence) Save(_ context.Context, state *journal.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) BasePath() string {
	return ""
}

func (m *memoryPersistence) state(t *testing.T) journal.State {
	t.Helper()
	s, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return *s
}

type recordingScheduler struct {
	scheduled []string
	cancelled []string
}

func (r *recordingScheduler) EnsurePermission(context.Context) bool { return true }

func (r *recordingScheduler) Schedule(_ context.Context, intake entry.Intake, _ entry.NotificationSettings) ([]string, error) {
	id := "r-" + intake.ID
	r.scheduled = append(r.scheduled, id)
	return []string{id}, nil
}

func (r *recordingScheduler) Cancel(_ context.Context, ids []string) {
	r.cancelled = append(r.cancelled, ids...)
}

var fixedNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)

func newService(mp *memoryPersistence) *Service {
	return &Service{Persistence: mp, Now: func() time.Time { return fixedNow }}
}

func TestTakeMedicationPersists(t *testing.T) {
	mp := newMemoryPersistence(nil)
	sched := &recordingScheduler{}
	svc := newService(mp)
	svc.Scheduler = sched
	ctx := context.Background()

	intake, err := svc.TakeMedication(ctx, journal.IntakeInput{Dose: entry.DoseHigh})
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if intake.Timestamp != entry.FromTime(fixedNow) {
		t.Fatalf("expected timestamp now, got %v", intake.Timestamp)
	}
	state := mp.state(t)
	if len(state.Intakes) != 1 || state.Intakes[0].ID != intake.ID {
		t.Fatalf("intake not persisted: %+v", state.Intakes)
	}
	if got := state.Intakes[0].NotificationIDs; len(got) != 1 || got[0] != "r-"+intake.ID {
		t.Fatalf("expected reminder ids to be stored, got %v", got)
	}
	if state.LastDoseMg != entry.DoseHigh {
		t.Fatalf("expected last dose to follow intake, got %d", state.LastDoseMg)
	}
}

func TestTakeMedicationRejectsDose(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)

	_, err := svc.TakeMedication(context.Background(), journal.IntakeInput{Dose: 15})
	if !errors.Is(err, entry.ErrInvalidDose) {
		t.Fatalf("expected ErrInvalidDose, got %v", err)
	}
	if mp.saves != 0 {
		t.Fatalf("rejected intake must not save, got %d saves", mp.saves)
	}
}

func TestEditMedication(t *testing.T) {
	mp := newMemoryPersistence(nil)
	sched := &recordingScheduler{}
	svc := newService(mp)
	svc.Scheduler = sched
	ctx := context.Background()

	if _, err := svc.EditMedication(ctx, "missing", journal.IntakeUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	intake, err := svc.TakeMedication(ctx, journal.IntakeInput{Dose: entry.DoseLow, WithFood: true})
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	withFood := false
	edited, err := svc.EditMedication(ctx, intake.ID, journal.IntakeUpdate{WithFood: &withFood})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.WithFood || edited.DoseMg != entry.DoseLow {
		t.Fatalf("unexpected edit result %+v", edited)
	}
	if len(sched.cancelled) != 1 || sched.cancelled[0] != "r-"+intake.ID {
		t.Fatalf("expected old reminders cancelled, got %v", sched.cancelled)
	}
	if n := len(mp.state(t).Intakes); n != 1 {
		t.Fatalf("edit must not add intakes, have %d", n)
	}
}

func TestValidationNoOpsAreRejected(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)
	ctx := context.Background()

	if _, err := svc.Meal(ctx, entry.Lunch, "   ", time.Time{}); !errors.Is(err, ErrRejected) {
		t.Fatalf("blank meal: expected ErrRejected, got %v", err)
	}
	if _, err := svc.Note(ctx, "", time.Time{}); !errors.Is(err, ErrRejected) {
		t.Fatalf("blank note: expected ErrRejected, got %v", err)
	}
	if _, err := svc.Sleep(ctx, fixedNow, 6); !errors.Is(err, ErrRejected) {
		t.Fatalf("sleep 6: expected ErrRejected, got %v", err)
	}
	if _, err := svc.SetReminder(ctx, entry.SettingKey("bogus"), true); !errors.Is(err, ErrRejected) {
		t.Fatalf("unknown key: expected ErrRejected, got %v", err)
	}
	if mp.saves != 0 {
		t.Fatalf("rejected writes must not save, got %d saves", mp.saves)
	}
}

func TestWritesShowUpInLogs(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)
	ctx := context.Background()

	if _, err := svc.Meal(ctx, entry.Breakfast, "toast", fixedNow.Add(-2*time.Hour)); err != nil {
		t.Fatalf("meal: %v", err)
	}
	if _, err := svc.Checkin(ctx, entry.Ratings{Focus: 3}, "", fixedNow.Add(-time.Hour)); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if _, err := svc.Note(ctx, "calm", time.Time{}); err != nil {
		t.Fatalf("note: %v", err)
	}

	logs, err := svc.Logs(ctx, fixedNow, fixedNow.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	var kinds []string
	for _, l := range logs {
		kinds = append(kinds, string(l.Kind))
	}
	want := []string{string(activity.KindNote), string(activity.KindCheckin), string(activity.KindMeal)}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestSleepAndStats(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)
	ctx := context.Background()

	if _, err := svc.Sleep(ctx, time.Time{}, 4); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if _, err := svc.TakeMedication(ctx, journal.IntakeInput{Dose: entry.DoseLow, Timestamp: entry.FromTime(fixedNow.Add(-time.Hour))}); err != nil {
		t.Fatalf("take: %v", err)
	}

	stats, err := svc.Stats(ctx, time.Time{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.SleepQuality != 4 {
		t.Fatalf("expected sleep quality 4, got %d", stats.SleepQuality)
	}
	if stats.LatestIntake == nil || stats.Counts.Intakes != 1 {
		t.Fatalf("expected one intake today, got %+v", stats)
	}
}

func TestCurveUsesTodaysIntake(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)
	ctx := context.Background()

	res, err := svc.Curve(ctx, CurveOptions{})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if res.Intake != nil || res.Marker.IsActive || res.Current != 0 {
		t.Fatalf("expected idle curve, got %+v", res)
	}
	if len(res.Points) != 25 {
		t.Fatalf("expected 25 points, got %d", len(res.Points))
	}

	if _, err := svc.TakeMedication(ctx, journal.IntakeInput{Dose: entry.DoseHigh, Timestamp: entry.FromTime(fixedNow.Add(-2 * time.Hour))}); err != nil {
		t.Fatalf("take: %v", err)
	}
	res, err = svc.Curve(ctx, CurveOptions{})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if res.Intake == nil || res.Dose != entry.DoseHigh {
		t.Fatalf("expected today's 20 mg intake, got %+v", res)
	}
	if !res.Marker.IsActive || res.Marker.CurrentHour != 2 || res.Current <= 0 {
		t.Fatalf("expected active marker at hour 2, got %+v (current %v)", res.Marker, res.Current)
	}

	offset := 500
	res, err = svc.Curve(ctx, CurveOptions{OffsetMinutes: &offset})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if res.OffsetMinutes != journal.MaxOffsetMinutes {
		t.Fatalf("expected clamped offset, got %d", res.OffsetMinutes)
	}
}

func TestExportAndSettings(t *testing.T) {
	mp := newMemoryPersistence(nil)
	svc := newService(mp)
	ctx := context.Background()

	if _, err := svc.SetOffset(ctx, -90); err != nil {
		t.Fatalf("offset: %v", err)
	}
	if _, err := svc.SetReminder(ctx, entry.SnackReminderKey, false); err != nil {
		t.Fatalf("reminder: %v", err)
	}
	view, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if view.OffsetMinutes != journal.MinOffsetMinutes || view.Notifications.SnackReminder {
		t.Fatalf("unexpected settings %+v", view)
	}

	md, err := svc.Export(ctx, 3)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(md, "# Sidekick report (3 days)") {
		t.Fatalf("unexpected export heading: %q", md)
	}
}

func TestLoadErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	mp := newMemoryPersistence(nil)
	mp.loadErr = boom
	svc := newService(mp)

	if _, err := svc.Note(context.Background(), "x", time.Time{}); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := (&Service{}).Export(context.Background(), 1); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
