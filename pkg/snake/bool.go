package snake

import (
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ParseBool is strconv.ParseBool with the addition of Yes/No and On/Off parsing.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes", "on", "ON", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No", "off", "OFF", "Off":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// PromptBool asks a yes/no question. An empty answer keeps def.
func PromptBool(label string, def bool) (bool, error) {
	validInput := "y/[n]"
	if def {
		validInput = "[y]/n"
	}

	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     label + " " + validInput,
		Templates: templates,
		Validate:  validate,
	}

	result, err := prompt.Run()
	if err != nil {
		return def, err
	}
	if result == "" {
		return def, nil
	}
	return ParseBool(result)
}

// PromptChoice asks for one of items, starting on index def.
func PromptChoice(label string, items []string, def int) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . | cyan }}",
		Selected: "{{ . | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		CursorPos: def,
		Size:      len(items),
	}

	i, _, err := prompt.Run()
	return i, err
}
