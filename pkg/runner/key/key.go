package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/sidekick/pkg/glyph"
	"tableflip.dev/sidekick/pkg/printers"
)

// Key prints the glyph legend of the activity feed.
type Key struct{}

func (k *Key) Do(_ context.Context) error {
	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("Feed")))
	pp := printers.PrettyPrint{}
	pp.Legend()
	return nil
}
