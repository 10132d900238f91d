package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/entry"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(sidekick completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(sidekick completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func mealCompletions() []string {
	out := make([]string, len(entry.MealTypes))
	for i, t := range entry.MealTypes {
		out[i] = string(t)
	}
	return out
}
