package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
	"cmdterm/internal/version"
)

// VersionCommand prints the cmdterm version.
type VersionCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "version" for registration and lookup.
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns a brief description of what the version command does.
func (c *VersionCommand) Description() string {
	return "Show cmdterm version information"
}

// Usage returns the syntax of the version command.
func (c *VersionCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for version.
func (c *VersionCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute prints the formatted version.
func (c *VersionCommand) Execute(_ []console.Arg) error {
	c.term.Print("%s", version.GetFormattedVersion())
	return nil
}
