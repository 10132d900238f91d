package checkin

import (
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/sidekick/pkg/entry"
)

const skip = "skip"

// TerminalPrompter asks on the terminal with promptui.
type TerminalPrompter struct{}

func (TerminalPrompter) Rating(c entry.Category) (int, error) {
	items := []string{skip}
	for v := entry.MinRating; v <= entry.MaxRating; v++ {
		items = append(items, strings.Repeat("●", v)+strings.Repeat("○", entry.MaxRating-v))
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . | cyan }}",
		Selected: "{{ . | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label(c),
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	// Index 0 is skip, index v is rating v.
	return i, nil
}

func (TerminalPrompter) Note() (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     "Note (optional)",
		Templates: templates,
	}
	return prompt.Run()
}
