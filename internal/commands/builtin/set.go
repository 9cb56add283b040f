package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// SetCommand lists the variables or assigns one.
type SetCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "set" for registration and lookup.
func (c *SetCommand) Name() string {
	return "set"
}

// Description returns a brief description of what the set command does.
func (c *SetCommand) Description() string {
	return "List all variables or set a variable value"
}

// Usage returns the syntax of the set command.
func (c *SetCommand) Usage() string {
	return "set [variable] [value]"
}

// Descriptor returns the shell registration for set.
func (c *SetCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: -1,
		Help:    c.Description(),
		Usage:   c.Usage(),
		Handler: c.Execute,
	}
}

// Execute lists "NAME: value" for every variable when called without arguments.
// Otherwise the remaining arguments, joined with spaces, become the new value.
func (c *SetCommand) Execute(args []console.Arg) error {
	sh := c.term.Shell()

	if len(args) == 0 {
		for _, v := range sh.Registry().Variables() {
			value, err := sh.GetVariable(v.Name)
			if err != nil {
				return err
			}
			c.term.Print("%s: %v", padRight(v.Name, nameWidth), value)
		}
		return nil
	}

	return sh.SetVariable(args[0].String(), joinArgs(args, 1))
}
