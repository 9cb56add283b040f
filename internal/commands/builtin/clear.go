package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// ClearCommand empties the log buffer.
type ClearCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "clear" for registration and lookup.
func (c *ClearCommand) Name() string {
	return "clear"
}

// Description returns a brief description of what the clear command does.
func (c *ClearCommand) Description() string {
	return "Clear the command console"
}

// Usage returns the syntax of the clear command.
func (c *ClearCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for clear.
func (c *ClearCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute clears the buffer.
func (c *ClearCommand) Execute(_ []console.Arg) error {
	c.term.Buffer().Clear()
	return nil
}
