package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/notify"
	"tableflip.dev/sidekick/pkg/printers"
	"tableflip.dev/sidekick/pkg/runner/remind"
	"tableflip.dev/sidekick/pkg/store"
)

func addRemind(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remind",
		Aliases: []string{"daemon"},
		Short:   "Stay running and deliver meal, snack and rebound reminders.",
		Long: `Watches the journal on disk and schedules the reminders of recent intakes.
Intakes logged from any other sidekick command or the MCP server are picked up
as soon as they are saved. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}

			log := logrus.WithField("component", "remind")
			pp := printers.PrettyPrint{}
			r := remind.Remind{
				Persistence: p,
				Permitted:   cfg.NotificationsEnabled(),
				Deliver: func(rem notify.Reminder) {
					log.WithFields(logrus.Fields{"kind": rem.Kind, "intake": rem.IntakeID}).Info("reminder delivered")
					pp.Reminder(rem)
				},
				Log: log,
				Ready: func(pending int) {
					confirm("Watching %s, %d reminders pending.", p.BasePath(), pending)
				},
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
