package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/notify"
	"tableflip.dev/sidekick/pkg/store"
)

// loadService wires the journal on disk for a one-shot command. Reminders
// are left to the remind daemon, so writes never schedule anything here.
func loadService() (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Scheduler: notify.Offline{}}, nil
}

// explain turns validation sentinels into a message for the user.
func explain(err error, what string) error {
	switch {
	case errors.Is(err, app.ErrRejected):
		return fmt.Errorf("%s: nothing recorded", what)
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: not found", what)
	}
	return err
}

func confirm(format string, a ...interface{}) {
	_, _ = color.New(color.FgHiGreen).Fprintf(color.Output, format+"\n", a...)
}
