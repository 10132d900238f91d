package info

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/store"
	"tableflip.dev/sidekick/pkg/timeutil"
)

const configPathEnv = "SIDEKICK_CONFIG_PATH"

type Info struct {
	Config      store.Config
	Persistence store.Persistence
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output

	if override := os.Getenv(configPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, configPathEnv+" found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, configPathEnv+" env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.notifications:", n.Config.NotificationsEnabled())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	_, _ = fmt.Fprintln(out, "Storage:", filepath.Join(n.Persistence.BasePath(), store.Namespace))

	state, err := n.Persistence.Load(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Records:\n")
	_, _ = fmt.Fprintf(out, "  intakes   %d\n", len(state.Intakes))
	_, _ = fmt.Fprintf(out, "  check-ins %d\n", len(state.Checkins))
	_, _ = fmt.Fprintf(out, "  meals     %d\n", len(state.Meals))
	_, _ = fmt.Fprintf(out, "  notes     %d\n", len(state.Notes))
	_, _ = fmt.Fprintf(out, "  days      %d\n", len(state.DayContexts))

	if first, ok := oldest(state.Intakes); ok {
		_, _ = fmt.Fprintln(out, "First intake:", timeutil.DateKey(first.Time()))
	}
	return nil
}

func oldest(intakes []entry.Intake) (entry.Timestamp, bool) {
	if len(intakes) == 0 {
		return 0, false
	}
	min := intakes[0].Timestamp
	for _, in := range intakes[1:] {
		if in.Timestamp < min {
			min = in.Timestamp
		}
	}
	return min, true
}
