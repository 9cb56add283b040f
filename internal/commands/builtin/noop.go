package builtin

import "cmdterm/internal/console"

// NoopCommand accepts any arguments and does nothing. It is handy in scripts and bindings.
type NoopCommand struct{}

// Name returns the command name "noop" for registration and lookup.
func (c *NoopCommand) Name() string {
	return "noop"
}

// Description returns a brief description of what the noop command does.
func (c *NoopCommand) Description() string {
	return "No operation"
}

// Usage returns the syntax of the noop command.
func (c *NoopCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for noop.
func (c *NoopCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: -1,
		Help:    c.Description(),
		Handler: func([]console.Arg) error { return nil },
	}
}
