package builtin

import (
	"strings"

	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// HelpCommand lists the visible commands, or shows the help of one command.
type HelpCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string {
	return "help"
}

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Display help information about a command"
}

// Usage returns the syntax of the help command.
func (c *HelpCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for help.
func (c *HelpCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 1,
		Help:    c.Description(),
		Usage:   c.Usage(),
		Handler: c.Execute,
	}
}

// Execute lists every visible command as "NAME: help", or describes args[0].
func (c *HelpCommand) Execute(args []console.Arg) error {
	registry := c.term.Shell().Registry()

	if len(args) == 0 {
		for _, cmd := range registry.Commands() {
			if !cmd.Hidden {
				c.term.Print("%s: %s", padRight(cmd.Name, nameWidth), cmd.Help)
			}
		}
		return nil
	}

	name := strings.ToUpper(args[0].String())
	cmd, ok := registry.Command(name)
	if !ok {
		c.term.Shell().Report(console.ErrLookup, "Command %s could not be found.", name)
		return nil
	}

	switch {
	case cmd.Help == "":
		c.term.Print("%s does not provide any help documentation.", name)
	case cmd.Usage == "":
		c.term.Print("%s", cmd.Help)
	default:
		c.term.Print("%s\nUsage: %s", cmd.Help, cmd.Usage)
	}
	return nil
}
