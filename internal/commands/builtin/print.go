package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// PrintCommand logs its arguments as a message.
type PrintCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "print" for registration and lookup.
func (c *PrintCommand) Name() string {
	return "print"
}

// Description returns a brief description of what the print command does.
func (c *PrintCommand) Description() string {
	return "Output message"
}

// Usage returns the syntax of the print command.
func (c *PrintCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for print.
func (c *PrintCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: -1,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute logs the arguments joined with single spaces.
func (c *PrintCommand) Execute(args []console.Arg) error {
	c.term.LogMessage(joinArgs(args, 0))
	return nil
}
