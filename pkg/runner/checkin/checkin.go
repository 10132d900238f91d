package checkin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/entry"
)

// ErrEmpty is returned for a check-in without ratings and without a note.
var ErrEmpty = errors.New("check-in needs at least one rating or a note")

// Prompter asks for the parts of a check-in.
type Prompter interface {
	// Rating returns 0 when the category is skipped.
	Rating(c entry.Category) (int, error)
	Note() (string, error)
}

// Checkin records how the user feels right now.
type Checkin struct {
	Service *app.Service
	Values  entry.Ratings
	Note    string
	At      time.Time
	// Prompter, when set, fills in everything not given on the command line.
	Prompter Prompter
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Checkin) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not check in, no service")
	}

	values := n.Values.Clean()
	note := strings.TrimSpace(n.Note)

	if n.Prompter != nil {
		for _, c := range entry.Categories {
			if _, ok := values.Get(c); ok {
				continue
			}
			v, err := n.Prompter.Rating(c)
			if err != nil {
				return err
			}
			values.Set(c, v)
		}
		if note == "" {
			var err error
			if note, err = n.Prompter.Note(); err != nil {
				return err
			}
			note = strings.TrimSpace(note)
		}
	}

	if values.Empty() && note == "" {
		return ErrEmpty
	}

	c, err := n.Service.Checkin(ctx, values, note, n.At)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	summary := entry.FormatRatings(c.Values, ": ")
	if summary == "" {
		summary = "note only"
	}
	_, _ = color.New(color.FgHiCyan).Fprintf(out, "Checked in at %s: %s\n", c.Timestamp.Time().Format("15:04"), summary)
	return nil
}

// label names a category in prompts.
func label(c entry.Category) string {
	return fmt.Sprintf("%s (%d-%d)", c.Label(), entry.MinRating, entry.MaxRating)
}
