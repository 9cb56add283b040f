package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
	"cmdterm/pkg/consoletypes"
)

// Variables returns the built-in variables of term.
func Variables(term *terminal.Terminal) []console.VariableDescriptor {
	return []console.VariableDescriptor{
		{
			Name: "TimeScale",
			Kind: consoletypes.KindFloat,
			Get:  func() interface{} { return term.TimeScale() },
			Set:  func(v interface{}) { term.SetTimeScale(v.(float64)) },
			Validate: func(v interface{}) error {
				return terminal.ValidateTimeScale(v.(float64))
			},
		},
		{
			Name: "HandleHostLog",
			Kind: consoletypes.KindBool,
			Get:  func() interface{} { return term.HandlesHostLog() },
			Set:  func(v interface{}) { term.SetHandleHostLog(v.(bool)) },
		},
		{
			Name: "Prompt",
			Kind: consoletypes.KindString,
			Get:  func() interface{} { return term.Prompt() },
			Set:  func(v interface{}) { term.SetPrompt(v.(string)) },
		},
		{
			Name:    "Theme",
			Kind:    consoletypes.KindEnum,
			Symbols: term.Themes().Names(),
			Get:     func() interface{} { return term.ThemeName() },
			Set: func(v interface{}) {
				// Symbols come from the theme service, so the name always resolves.
				_ = term.SetTheme(v.(string))
			},
		},
		{
			Name: "CompletionPadding",
			Kind: consoletypes.KindInt,
			Get:  func() interface{} { return term.CompletionPadding() },
			Set:  func(v interface{}) { term.SetCompletionPadding(v.(int)) },
		},
	}
}
