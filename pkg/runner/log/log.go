package log

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/printers"
)

// Log prints the activity feed for [Since, Until].
type Log struct {
	Service *app.Service
	Since   time.Time
	Until   time.Time
	ShowID  bool
	JSON    bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Log) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log, no service")
	}

	entries, err := n.Service.Logs(ctx, n.Since, n.Until)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.JSON {
		if entries == nil {
			entries = []activity.Entry{}
		}
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.Feed(entries)
	return nil
}
