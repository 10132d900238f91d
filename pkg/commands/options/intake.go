package options

import (
	"github.com/spf13/cobra"
)

// IntakeOptions
type IntakeOptions struct {
	Dose   int
	Food   bool
	NoFood bool
	Note   string
}

func AddIntakeArgs(cmd *cobra.Command, o *IntakeOptions) {
	cmd.Flags().IntVarP(&o.Dose, "dose", "d", 0,
		"Dose in mg, 10 or 20. Defaults to the last dose.")
	cmd.Flags().BoolVar(&o.Food, "food", false,
		"Taken with food.")
	cmd.Flags().BoolVar(&o.NoFood, "no-food", false,
		"Taken without food.")
	cmd.Flags().StringVarP(&o.Note, "note", "n", "",
		"Optional note.")
	cmd.MarkFlagsMutuallyExclusive("food", "no-food")
}

// WithFood returns the food flag if one was given.
func (o *IntakeOptions) WithFood() *bool {
	switch {
	case o.Food:
		v := true
		return &v
	case o.NoFood:
		v := false
		return &v
	}
	return nil
}
