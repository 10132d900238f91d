package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
)

func addMeal(topLevel *cobra.Command) {
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:     "meal TYPE DESCRIPTION...",
		Aliases: []string{"ate", "food"},
		Short:   "Log a meal: breakfast, snack, lunch or dinner.",
		Example: `
sidekick meal breakfast oats and berries
sidekick meal snack nuts --at 10:30
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a meal type and a description")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return mealCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entry.ParseMealType(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			at, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			m, err := svc.Meal(cmd.Context(), t, joinArgs(args[1:]), at)
			if err != nil {
				return oo.HandleError(explain(err, "meal"))
			}
			confirm("%s at %s: %s", m.Type.Label(), m.Timestamp.Time().Format("15:04"), m.Description)
			return nil
		},
	}

	options.AddAtArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
