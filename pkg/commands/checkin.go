package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/runner/checkin"
)

func addCheckin(topLevel *cobra.Command) {
	co := &options.CheckinOptions{}
	ao := &options.AtOptions{}
	ii := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "checkin",
		Aliases: []string{"ci", "feel"},
		Short:   "Rate how you feel right now.",
		Example: `
sidekick checkin --mood 4 --focus 3
sidekick checkin -n "headache after lunch"
sidekick checkin -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			at, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			c := checkin.Checkin{
				Service: svc,
				Values:  co.Ratings(),
				Note:    co.Note,
				At:      at,
			}
			if ii.Interactive {
				c.Prompter = checkin.TerminalPrompter{}
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCheckinArgs(cmd, co)
	options.AddAtArgs(cmd, ao)
	options.InteractiveArgs(cmd, ii)

	topLevel.AddCommand(cmd)
}
