package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/store"
)

type memoryStore struct {
	mu   sync.Mutex
	data []byte
}

func (m *memoryStore) Load(context.Context) (*journal.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return journal.NewState(), nil
	}
	s := &journal.State{}
	if err := json.Unmarshal(m.data, s); err != nil {
		return nil, err
	}
	s.Normalize()
	return s, nil
}

func (m *memoryStore) Save(_ context.Context, s *journal.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func (m *memoryStore) BasePath() string { return "" }

var now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.Local)

func newTestService() *Service {
	return NewService(&app.Service{Persistence: &memoryStore{}, Now: func() time.Time { return now }})
}

func TestLogMedicationDefaultsFoodFromLastIntake(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	withFood := false
	if _, err := svc.LogMedication(ctx, MedicationOptions{DoseMg: 20, WithFood: &withFood}); err != nil {
		t.Fatalf("LogMedication failed: %v", err)
	}
	dto, err := svc.LogMedication(ctx, MedicationOptions{DoseMg: 10, At: "2026-10-15T11:00:00Z"})
	if err != nil {
		t.Fatalf("LogMedication failed: %v", err)
	}
	if dto.WithFood {
		t.Fatalf("expected withFood to follow the last intake")
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := svc.LogMedication(ctx, MedicationOptions{DoseMg: 15}); err == nil {
		t.Fatalf("expected unknown dose to be rejected")
	}
}

func TestLogCheckinRequiresContent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.LogCheckin(ctx, CheckinOptions{Mood: 9}); err == nil {
		t.Fatalf("expected out-of-range only check-in to be rejected")
	}
	dto, err := svc.LogCheckin(ctx, CheckinOptions{Mood: 4, Note: "steady"})
	if err != nil {
		t.Fatalf("LogCheckin failed: %v", err)
	}
	if dto.Summary != "Mood: 4/5 · Note: steady" {
		t.Fatalf("unexpected summary %q", dto.Summary)
	}
}

func TestActivityFeedWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.LogNote(ctx, "recent", now.Add(-time.Hour).Format(time.RFC3339)); err != nil {
		t.Fatalf("LogNote failed: %v", err)
	}
	if _, err := svc.LogMeal(ctx, "dinner", "soup", now.Add(-30*time.Hour).Format(time.RFC3339)); err != nil {
		t.Fatalf("LogMeal failed: %v", err)
	}

	entries, err := svc.ActivityFeed(ctx, FeedOptions{})
	if err != nil {
		t.Fatalf("ActivityFeed failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != "note" {
		t.Fatalf("expected only the note in the default window, got %+v", entries)
	}
	if !strings.HasPrefix(entries[0].ID, "note-") || entries[0].SourceID == "" {
		t.Fatalf("unexpected ids %+v", entries[0])
	}

	entries, err = svc.ActivityFeed(ctx, FeedOptions{Window: "2d"})
	if err != nil {
		t.Fatalf("ActivityFeed failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both entries in 2d, got %d", len(entries))
	}

	if _, err := svc.ActivityFeed(ctx, FeedOptions{Window: "soon"}); err == nil {
		t.Fatalf("expected invalid window error")
	}
}

func TestLogMealValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.LogMeal(ctx, "brunch", "eggs", ""); err == nil {
		t.Fatalf("expected unknown meal type error")
	}
	if _, err := svc.LogMeal(ctx, "lunch", "  ", ""); err == nil {
		t.Fatalf("expected empty description error")
	}
	dto, err := svc.LogMeal(ctx, "bio-snack", "nuts", "")
	if err != nil {
		t.Fatalf("LogMeal failed: %v", err)
	}
	if dto.Summary != "Snack: nuts" {
		t.Fatalf("unexpected summary %q", dto.Summary)
	}
}

func TestEffectCurveAndReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.LogMedication(ctx, MedicationOptions{DoseMg: int(entry.DoseLow), At: now.Add(-2 * time.Hour).Format(time.RFC3339)}); err != nil {
		t.Fatalf("LogMedication failed: %v", err)
	}
	curve, err := svc.EffectCurve(ctx, nil, nil)
	if err != nil {
		t.Fatalf("EffectCurve failed: %v", err)
	}
	if curve.Intake == nil || !curve.Marker.IsActive || len(curve.Points) != 25 {
		t.Fatalf("unexpected curve %+v", curve)
	}

	bad := 15
	if _, err := svc.EffectCurve(ctx, &bad, nil); err == nil {
		t.Fatalf("expected dose override to be validated")
	}

	md, err := svc.ExportReport(ctx, 1)
	if err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}
	if !strings.Contains(md, "Intake 10 mg, with food") {
		t.Fatalf("report is missing the intake:\n%s", md)
	}
}
