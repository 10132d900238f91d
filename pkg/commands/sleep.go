package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
)

func addSleep(topLevel *cobra.Command) {
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "sleep QUALITY",
		Short: "Rate last night's sleep, 1-5.",
		Example: `
sidekick sleep 4
sidekick sleep 2 --at "2026-10-14 07:00"
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"1", "2", "3", "4", "5"},
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.Atoi(args[0])
			if err != nil || q < entry.MinRating || q > entry.MaxRating {
				return oo.HandleError(fmt.Errorf("sleep quality must be %d-%d, got %q", entry.MinRating, entry.MaxRating, args[0]))
			}
			at, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			dc, err := svc.Sleep(cmd.Context(), at, q)
			if err != nil {
				return oo.HandleError(explain(err, "sleep"))
			}
			confirm("Sleep quality %d/5 for %s", q, dc.DateKey)
			return nil
		},
	}

	options.AddAtArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
