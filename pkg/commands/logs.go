package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/runner/log"
	"tableflip.dev/sidekick/pkg/timeutil"
)

func addLogs(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log", "feed"},
		Short:   "Show the activity feed, newest first.",
		Example: `
sidekick logs
sidekick logs --last 3d --show-id
sidekick logs --today --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			since := timeutil.StartOfDay(now)
			if !lo.Today {
				window, _, err := timeutil.ParseWindow(lo.Last)
				if err != nil {
					return oo.HandleError(err)
				}
				since = now.Add(-window)
			}

			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			l := log.Log{
				Service: svc,
				Since:   since,
				Until:   now,
				ShowID:  ido.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
