package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// HistoryCommand lists the submitted lines.
type HistoryCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "history" for registration and lookup.
func (c *HistoryCommand) Name() string {
	return "history"
}

// Description returns a brief description of what the history command does.
func (c *HistoryCommand) Description() string {
	return "List the commands entered so far"
}

// Usage returns the syntax of the history command.
func (c *HistoryCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for history.
func (c *HistoryCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute prints the history oldest first, numbered from 1.
func (c *HistoryCommand) Execute(_ []console.Arg) error {
	for i, line := range c.term.History().Lines() {
		c.term.Print("%4d  %s", i+1, line)
	}
	return nil
}
