package options

import (
	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	Days   int
	Copy   bool
	Render bool
	Width  int
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().IntVarP(&o.Days, "days", "d", 7,
		"Number of calendar days, counting today.")
	cmd.Flags().BoolVarP(&o.Copy, "copy", "c", false,
		"Copy the report to the clipboard instead of printing it.")
	cmd.Flags().BoolVar(&o.Render, "render", false,
		"Render the Markdown for the terminal.")
	cmd.Flags().IntVar(&o.Width, "width", 80,
		"Wrap width used with --render.")
}
