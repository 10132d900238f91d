package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
)

func addNote(topLevel *cobra.Command) {
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:     "note TEXT...",
		Aliases: []string{"notes"},
		Short:   "Add a free text note.",
		Example: `
sidekick note this is a note
sidekick note --at 21:00 "hard to fall asleep"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			n, err := svc.Note(cmd.Context(), joinArgs(args), at)
			if err != nil {
				return oo.HandleError(explain(err, "note"))
			}
			confirm("Noted at %s", n.Timestamp.Time().Format("15:04"))
			return nil
		},
	}

	options.AddAtArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
