package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the glyphs used in the feed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return oo.HandleError(k.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
