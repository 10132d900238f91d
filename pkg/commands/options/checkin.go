package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/entry"
)

// CheckinOptions
type CheckinOptions struct {
	Mood         int
	Focus        int
	Irritability int
	Restlessness int
	Note         string
}

func AddCheckinArgs(cmd *cobra.Command, o *CheckinOptions) {
	cmd.Flags().IntVarP(&o.Mood, "mood", "m", 0, "Mood, 1-5.")
	cmd.Flags().IntVarP(&o.Focus, "focus", "f", 0, "Focus, 1-5.")
	cmd.Flags().IntVarP(&o.Irritability, "irritability", "r", 0, "Irritability, 1-5.")
	cmd.Flags().IntVarP(&o.Restlessness, "restlessness", "s", 0, "Restlessness, 1-5.")
	cmd.Flags().StringVarP(&o.Note, "note", "n", "", "Optional note.")
}

func (o *CheckinOptions) Ratings() entry.Ratings {
	return entry.Ratings{
		Mood:         o.Mood,
		Focus:        o.Focus,
		Irritability: o.Irritability,
		Restlessness: o.Restlessness,
	}
}
