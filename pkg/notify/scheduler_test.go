package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/sidekick/pkg/entry"
)

func newTestService(t *testing.T, deliver func(Reminder)) *Service {
	t.Helper()
	s, err := NewService(true, deliver)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	s.Start()
	t.Cleanup(func() { _ = s.Shutdown() })
	return s
}

func TestServiceScheduleAndCancel(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	intake := entry.Intake{ID: "i1", Timestamp: entry.FromTime(time.Now()), WithFood: false}
	ids, err := s.Schedule(ctx, intake, entry.DefaultNotificationSettings())
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected three ids, got %v", ids)
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("id %q is not a uuid: %v", id, err)
		}
	}
	if got := len(s.Pending()); got != 3 {
		t.Fatalf("expected three pending reminders, got %d", got)
	}
	if p := s.Pending(); p[0].Kind != KindMeal || p[2].Kind != KindRebound {
		t.Fatalf("expected pending sorted by time, got %v", kinds(p))
	}

	s.Cancel(ctx, ids[:1])
	if got := len(s.Pending()); got != 2 {
		t.Fatalf("expected two pending reminders after cancel, got %d", got)
	}

	// Empty, malformed and unknown ids are tolerated.
	s.Cancel(ctx, nil)
	s.Cancel(ctx, []string{"not-a-uuid", uuid.NewString()})

	s.CancelAll()
	if got := len(s.Pending()); got != 0 {
		t.Fatalf("expected nothing pending, got %d", got)
	}
}

func TestServiceDeliversReminder(t *testing.T) {
	fired := make(chan Reminder, 1)
	s := newTestService(t, func(r Reminder) { fired <- r })

	ids, err := s.ScheduleReminders(context.Background(), []Reminder{{
		Kind:     KindSnack,
		IntakeID: "i2",
		At:       time.Now().Add(200 * time.Millisecond),
		Title:    "Snack reminder",
	}})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected one id, got %v", ids)
	}

	select {
	case r := <-fired:
		if r.IntakeID != "i2" || r.Kind != KindSnack {
			t.Fatalf("unexpected reminder %+v", r)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the reminder")
	}
	if got := len(s.Pending()); got != 0 {
		t.Fatalf("fired reminder still pending")
	}
}

func TestOfflineNeverPermits(t *testing.T) {
	var o Offline
	if o.EnsurePermission(context.Background()) {
		t.Fatalf("offline scheduler must deny permission")
	}
	ids, err := o.Schedule(context.Background(), entry.Intake{}, entry.DefaultNotificationSettings())
	if err != nil || len(ids) != 0 {
		t.Fatalf("unexpected schedule result %v, %v", ids, err)
	}
}
