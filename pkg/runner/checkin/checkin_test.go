package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/store"
)

type memoryPersistence struct {
	data []byte
}

func (m *memoryPersistence) Load(context.Context) (*journal.State, error) {
	if m.data == nil {
		return journal.NewState(), nil
	}
	s := &journal.State{}
	return s, json.Unmarshal(m.data, s)
}

func (m *memoryPersistence) Save(_ context.Context, s *journal.State) error {
	var err error
	m.data, err = json.Marshal(s)
	return err
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func (m *memoryPersistence) BasePath() string { return "" }

type scriptedPrompter struct {
	ratings map[entry.Category]int
	note    string
	asked   []entry.Category
}

func (s *scriptedPrompter) Rating(c entry.Category) (int, error) {
	s.asked = append(s.asked, c)
	return s.ratings[c], nil
}

func (s *scriptedPrompter) Note() (string, error) { return s.note, nil }

func newService(mp *memoryPersistence) *app.Service {
	now := time.Date(2026, time.October, 15, 14, 0, 0, 0, time.Local)
	return &app.Service{Persistence: mp, Now: func() time.Time { return now }}
}

func TestCheckinRefusesEmpty(t *testing.T) {
	mp := &memoryPersistence{}
	c := &Checkin{Service: newService(mp), Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if mp.data != nil {
		t.Fatal("empty check-in must not be saved")
	}
}

func TestCheckinPromptsForMissing(t *testing.T) {
	mp := &memoryPersistence{}
	p := &scriptedPrompter{ratings: map[entry.Category]int{entry.Focus: 2}, note: " meh "}
	c := &Checkin{
		Service:  newService(mp),
		Values:   entry.Ratings{Mood: 4},
		Prompter: p,
		Out:      &bytes.Buffer{},
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	for _, asked := range p.asked {
		if asked == entry.Mood {
			t.Fatal("mood was given and should not be prompted")
		}
	}
	state, _ := mp.Load(context.Background())
	if len(state.Checkins) != 1 {
		t.Fatalf("expected one check-in, got %d", len(state.Checkins))
	}
	got := state.Checkins[0]
	if got.Values.Mood != 4 || got.Values.Focus != 2 || got.Values.Irritability != 0 || got.Note != "meh" {
		t.Fatalf("unexpected check-in %+v", got)
	}
}
