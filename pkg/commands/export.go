package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"report"},
		Short:   "Export a Markdown report of the last days.",
		Example: `
sidekick export
sidekick export --days 14 --copy
sidekick export --render
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			e := export.Export{
				Service: svc,
				Days:    eo.Days,
				Copy:    eo.Copy,
				Render:  eo.Render,
				Width:   eo.Width,
			}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddExportArgs(cmd, eo)
	cmd.MarkFlagsMutuallyExclusive("copy", "render")

	topLevel.AddCommand(cmd)
}
