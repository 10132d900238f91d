package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/snake"
)

func addTake(topLevel *cobra.Command) {
	io := &options.IntakeOptions{}
	ao := &options.AtOptions{}
	ii := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "take [DOSE]",
		Aliases: []string{"med", "dose"},
		Short:   "Log a medication intake.",
		Example: `
sidekick take
sidekick take 20 --food
sidekick take --dose 10 --no-food --at 7:45 --note "late start"
sidekick take -i
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"10", "20"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			view, err := svc.Settings(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}

			dose := view.LastDose
			if io.Dose != 0 {
				dose = entry.Dose(io.Dose)
			}
			if len(args) == 1 {
				if dose, err = entry.ParseDose(args[0]); err != nil {
					return oo.HandleError(err)
				}
			}
			withFood := view.LastWithFood
			if f := io.WithFood(); f != nil {
				withFood = *f
			}

			if ii.Interactive {
				if dose, withFood, err = promptIntake(dose, withFood); err != nil {
					return oo.HandleError(err)
				}
			}

			at, err := ao.GetAt(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			in := journal.IntakeInput{Dose: dose, WithFood: withFood, Note: io.Note}
			if !at.IsZero() {
				in.Timestamp = entry.FromTime(at)
			}

			intake, err := svc.TakeMedication(cmd.Context(), in)
			if err != nil {
				return oo.HandleError(err)
			}
			confirm("Logged %s at %s (id %s)", entry.FormatDose(intake.DoseMg, intake.WithFood),
				intake.Timestamp.Time().Format("15:04"), intake.ID)
			return nil
		},
	}

	options.AddIntakeArgs(cmd, io)
	options.AddAtArgs(cmd, ao)
	options.InteractiveArgs(cmd, ii)

	topLevel.AddCommand(cmd)
}

func promptIntake(dose entry.Dose, withFood bool) (entry.Dose, bool, error) {
	doses := []entry.Dose{entry.DoseLow, entry.DoseHigh}
	labels := make([]string, len(doses))
	def := 0
	for i, d := range doses {
		labels[i] = fmt.Sprintf("%d mg", d)
		if d == dose {
			def = i
		}
	}
	i, err := snake.PromptChoice("Dose", labels, def)
	if err != nil {
		return dose, withFood, err
	}
	withFood, err = snake.PromptBool("With food", withFood)
	return doses[i], withFood, err
}

// joinArgs folds free text arguments into one string.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
