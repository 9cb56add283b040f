package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// ExitCommand asks the host to end the session. With an alias it is registered hidden
// and accepts any arguments.
type ExitCommand struct {
	term  *terminal.Terminal
	alias string
}

// Name returns "exit", or the alias.
func (c *ExitCommand) Name() string {
	if c.alias != "" {
		return c.alias
	}
	return "exit"
}

// Description returns a brief description of what the exit command does.
func (c *ExitCommand) Description() string {
	return "Exit the console"
}

// Usage returns the syntax of the exit command.
func (c *ExitCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration.
func (c *ExitCommand) Descriptor() console.CommandDescriptor {
	d := console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
	if c.alias != "" {
		d.MaxArgs = -1
		d.Hidden = true
	}
	return d
}

// Execute requests the exit. The host loop stops after the current line.
func (c *ExitCommand) Execute(_ []console.Arg) error {
	c.term.RequestExit()
	return nil
}
