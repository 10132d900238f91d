package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/notify"
	"tableflip.dev/sidekick/pkg/store"
)

type diskConfig struct {
	path string
}

func (c diskConfig) BasePath() string           { return c.path }
func (c diskConfig) NotificationsEnabled() bool { return false }

func TestConcurrentNotesAllPersist(t *testing.T) {
	p, err := store.Load(diskConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	svc := &Service{Persistence: p, Scheduler: notify.Offline{}}
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.Note(ctx, fmt.Sprintf("note %d", i), time.Time{}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("note: %v", err)
	}

	state, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(state.Notes); got != n {
		t.Fatalf("expected %d stored notes, got %d", n, got)
	}
}

func TestSeparateServicesShareTheJournalLock(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()

	// Two services over the same directory stand in for two processes.
	services := make([]*Service, 2)
	for i := range services {
		p, err := store.Load(diskConfig{path: base})
		if err != nil {
			t.Fatalf("load persistence: %v", err)
		}
		services[i] = &Service{Persistence: p, Scheduler: notify.Offline{}}
	}

	const perService = 20
	var wg sync.WaitGroup
	for _, svc := range services {
		for i := 0; i < perService; i++ {
			wg.Add(1)
			go func(svc *Service, i int) {
				defer wg.Done()
				if _, err := svc.Note(ctx, fmt.Sprintf("note %d", i), time.Time{}); err != nil {
					t.Errorf("note: %v", err)
				}
			}(svc, i)
		}
	}
	wg.Wait()

	state, err := services[0].Persistence.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, want := len(state.Notes), 2*perService; got != want {
		t.Fatalf("expected %d stored notes, got %d", want, got)
	}
}
