package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/printers"
)

func addCurve(topLevel *cobra.Command) {
	var (
		dose   int
		offset int
	)

	cmd := &cobra.Command{
		Use:     "curve",
		Aliases: []string{"effect"},
		Short:   "Show today's estimated effect curve.",
		Example: `
sidekick curve
sidekick curve --dose 10 --offset -30
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts app.CurveOptions
			if cmd.Flags().Changed("dose") {
				d := entry.Dose(dose)
				opts.Dose = &d
			}
			if cmd.Flags().Changed("offset") {
				opts.OffsetMinutes = &offset
			}

			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			res, err := svc.Curve(cmd.Context(), opts)
			if err != nil {
				return oo.HandleError(err)
			}

			if oo.JSON {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}
			pp := printers.PrettyPrint{}
			pp.Curve(res)
			return nil
		},
	}

	cmd.Flags().IntVarP(&dose, "dose", "d", 0, "Preview another dose in mg, 10 or 20.")
	cmd.Flags().IntVar(&offset, "offset", 0, "Preview another metabolism offset in minutes, -60 to 60.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
