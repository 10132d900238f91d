package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/runner/info"
	"tableflip.dev/sidekick/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show where sidekick keeps its journal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			i := info.Info{Config: cfg, Persistence: p}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
