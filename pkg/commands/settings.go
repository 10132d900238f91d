package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/sidekick/pkg/commands/options"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/printers"
	"tableflip.dev/sidekick/pkg/snake"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Show reminder toggles, the metabolism offset and intake defaults.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			v, err := svc.Settings(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				b, err := json.MarshalIndent(v, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}
			pp := printers.PrettyPrint{}
			pp.Settings(v)
			return nil
		},
	}
	options.AddOutputArg(cmd, oo)

	addReminderSetting(cmd)
	addOffsetSetting(cmd)

	topLevel.AddCommand(cmd)
}

func addReminderSetting(settings *cobra.Command) {
	keys := make([]string, len(entry.SettingKeys))
	for i, k := range entry.SettingKeys {
		keys[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "reminder KEY on|off",
		Short: "Turn a reminder on or off: " + strings.Join(keys, ", ") + ".",
		Example: `
sidekick settings reminder snack off
sidekick settings reminder rebound on
`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := entry.ParseSettingKey(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			on, err := snake.ParseBool(args[1])
			if err != nil {
				return oo.HandleError(fmt.Errorf("expected on or off, got %q", args[1]))
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			if _, err := svc.SetReminder(cmd.Context(), key, on); err != nil {
				return oo.HandleError(explain(err, "reminder "+args[0]))
			}
			state := "off"
			if on {
				state = "on"
			}
			confirm("%s %s", key.Label(), state)
			return nil
		},
	}

	settings.AddCommand(cmd)
}

func addOffsetSetting(settings *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "offset MINUTES",
		Short: "Shift the effect curve, -60 to 60 minutes.",
		Example: `
sidekick settings offset 30
sidekick settings offset -- -45
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return oo.HandleError(fmt.Errorf("offset must be whole minutes, got %q", args[0]))
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			got, err := svc.SetOffset(cmd.Context(), minutes)
			if err != nil {
				return oo.HandleError(err)
			}
			confirm("Metabolism offset %+d min", got)
			return nil
		},
	}

	settings.AddCommand(cmd)
}
