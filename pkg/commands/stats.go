package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/printers"
)

func addStats(topLevel *cobra.Command) {
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count what was logged on a day.",
		Example: `
sidekick stats
sidekick stats --at "2026-10-14 12:00"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			if day.IsZero() {
				day = time.Now()
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := svc.Stats(cmd.Context(), day)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				b, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}
			pp := printers.PrettyPrint{}
			pp.Stats(s)
			return nil
		},
	}

	options.AddAtArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
