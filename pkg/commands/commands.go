package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/sidekick/pkg/commands/options"
)

var (
	oo      = &options.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "sidekick",
		Short: base.Wrap80("Track medication intakes, how you feel, meals and sleep, and export it all for analysis."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTake(topLevel)
	addEdit(topLevel)
	addCheckin(topLevel)
	addMeal(topLevel)
	addNote(topLevel)
	addSleep(topLevel)
	addSettings(topLevel)
	addLogs(topLevel)
	addCurve(topLevel)
	addExport(topLevel)
	addStats(topLevel)
	addRemind(topLevel)
	addMCP(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}

func configureLogging(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.WarnLevel)
}
