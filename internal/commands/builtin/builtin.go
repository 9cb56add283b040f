// Package builtin provides the commands and variables every console ships with.
// Commands hold the terminal they act on, so they are created per session by Commands.
package builtin

import (
	"errors"
	"fmt"

	"cmdterm/internal/commands"
	"cmdterm/internal/console"
	"cmdterm/internal/parser"
	"cmdterm/internal/terminal"
)

// nameWidth is the column width of names in help and set listings.
const nameWidth = 16

// Commands returns the built-in commands bound to term.
func Commands(term *terminal.Terminal) []commands.Command {
	return []commands.Command{
		&HelpCommand{term: term},
		&ClearCommand{term: term},
		&SetCommand{term: term},
		NewTimeCommand(term),
		&ScheduleCommand{term: term, scaled: true},
		&ScheduleCommand{term: term, scaled: false},
		&PrintCommand{term: term},
		&TraceCommand{term: term},
		&BindCommand{term: term},
		&UnbindCommand{term: term},
		&CopyCommand{term: term},
		&HistoryCommand{term: term},
		&VersionCommand{term: term},
		&NoopCommand{},
		&ExitCommand{term: term},
		&ExitCommand{term: term, alias: "quit"},
	}
}

// Register adds the built-in commands to reg.
func Register(reg *commands.Registry, term *terminal.Terminal) error {
	var errs []error
	for _, cmd := range Commands(term) {
		if err := reg.Register(cmd); err != nil {
			errs = append(errs, fmt.Errorf("failed to register %s command: %w", cmd.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Install registers the built-in commands and variables with term and returns the
// command registry so callers can add their own commands before a later Register.
func Install(term *terminal.Terminal) (*commands.Registry, error) {
	reg := commands.NewRegistry()
	if err := Register(reg, term); err != nil {
		return reg, err
	}
	return reg, term.Register(reg.Descriptors(), Variables(term))
}

// joinArgs joins the raw arguments from start on with single spaces.
func joinArgs(args []console.Arg, start int) string {
	return parser.JoinArgs(console.Strings(args), start)
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
