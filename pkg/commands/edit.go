package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IntakeOptions{}
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a logged medication intake.",
		Long: base.Wrap80(`Change the time, dose, food flag or note of an intake. The ID is shown by
"sidekick logs --show-id"; the "med-" prefix is optional. Only the flags given
are changed.`),
		Example: `
sidekick edit med-3f6c1a --at 8:15
sidekick edit 3f6c1a --dose 10 --food
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}

			_, id := activity.SourceID(args[0])

			var u journal.IntakeUpdate
			if cmd.Flags().Changed("dose") {
				d := entry.Dose(io.Dose)
				if !d.Valid() {
					return oo.HandleError(entry.ErrInvalidDose)
				}
				u.Dose = &d
			}
			u.WithFood = io.WithFood()
			if cmd.Flags().Changed("note") {
				u.Note = &io.Note
			}
			if at, err := ao.GetAt(time.Now()); err != nil {
				return oo.HandleError(err)
			} else if !at.IsZero() {
				ts := entry.FromTime(at)
				u.Timestamp = &ts
			}

			intake, err := svc.EditMedication(cmd.Context(), id, u)
			if err != nil {
				return oo.HandleError(explain(err, "intake "+id))
			}
			confirm("Updated %s at %s", entry.FormatDose(intake.DoseMg, intake.WithFood),
				intake.Timestamp.Time().Format("2006-01-02 15:04"))
			return nil
		},
	}

	options.AddIntakeArgs(cmd, io)
	options.AddAtArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
