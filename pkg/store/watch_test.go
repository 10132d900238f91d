package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) NotificationsEnabled() bool {
	return false
}

func TestPersistenceWatchEmitsStateChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before saving.
	time.Sleep(50 * time.Millisecond)

	state := journal.NewState()
	state.Notes = append(state.Notes, entry.Note{ID: "n1", Timestamp: 1, Content: "hello world"})
	if err := p.Save(ctx, state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Type != EventStateChanged {
			t.Fatalf("expected EventStateChanged, got %v", evt.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state change event")
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}
