package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/timeutil"
)

// LogOptions
type LogOptions struct {
	Last  string
	Today bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVarP(&o.Last, "last", "l", timeutil.DefaultWindow,
		"Look-back window, example: 12h, 3d, 1w.")
	cmd.Flags().BoolVarP(&o.Today, "today", "t", false,
		"Show today only, from midnight.")
}
