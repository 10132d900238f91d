package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/store"
)

type staticPersistence struct{}

func (staticPersistence) Load(context.Context) (*journal.State, error) { return journal.NewState(), nil }
func (staticPersistence) Save(context.Context, *journal.State) error { return nil }
func (staticPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}
func (staticPersistence) BasePath() string { return "" }

func newService() *app.Service {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.Local)
	return &app.Service{Persistence: staticPersistence{}, Now: func() time.Time { return now }}
}

func TestExportPrintsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	e := &Export{Service: newService(), Days: 2, Out: &buf}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Sidekick report (2 days)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestExportCopiesToClipboard(t *testing.T) {
	var (
		buf    bytes.Buffer
		copied string
	)
	e := &Export{
		Service: newService(),
		Days:    1,
		Copy:    true,
		Out:     &buf,
		WriteClipboard: func(s string) error {
			copied = s
			return nil
		},
	}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(copied, "# Sidekick report (1 day)") {
		t.Fatalf("clipboard got %q", copied)
	}
	if strings.Contains(buf.String(), "# Sidekick") {
		t.Fatalf("report should not be printed when copied: %q", buf.String())
	}
}

func TestExportClipboardFailure(t *testing.T) {
	boom := errors.New("no clipboard")
	e := &Export{
		Service:        newService(),
		Copy:           true,
		Out:            &bytes.Buffer{},
		WriteClipboard: func(string) error { return boom },
	}
	if err := e.Do(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}
