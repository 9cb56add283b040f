package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// BindCommand binds a key to a command line.
type BindCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "bind" for registration and lookup.
func (c *BindCommand) Name() string {
	return "bind"
}

// Description returns a brief description of what the bind command does.
func (c *BindCommand) Description() string {
	return "Bind a key to a command"
}

// Usage returns the syntax of the bind command.
func (c *BindCommand) Usage() string {
	return "bind [key] [command] - keys are A-Z, Alpha0-Alpha9, F1-F12, CtrlA-CtrlZ, Space, Return, Escape, Tab and the arrows"
}

// Descriptor returns the shell registration for bind.
func (c *BindCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MinArgs: 2,
		MaxArgs: -1,
		Help:    c.Description(),
		Usage:   c.Usage(),
		Handler: c.Execute,
	}
}

// Execute appends args[1:] to the commands bound to args[0].
func (c *BindCommand) Execute(args []console.Arg) error {
	key, err := args[0].Enum(terminal.KeyType, terminal.Keys)
	if err != nil {
		return err
	}
	return c.term.AddBinding(key, joinArgs(args, 1))
}

// UnbindCommand removes every binding of a key.
type UnbindCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "unbind" for registration and lookup.
func (c *UnbindCommand) Name() string {
	return "unbind"
}

// Description returns a brief description of what the unbind command does.
func (c *UnbindCommand) Description() string {
	return "Remove all bindings from a key"
}

// Usage returns the syntax of the unbind command.
func (c *UnbindCommand) Usage() string {
	return "unbind [key]"
}

// Descriptor returns the shell registration for unbind.
func (c *UnbindCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MinArgs: 1,
		MaxArgs: 1,
		Help:    c.Description(),
		Usage:   c.Usage(),
		Handler: c.Execute,
	}
}

// Execute clears the bindings of args[0].
func (c *UnbindCommand) Execute(args []console.Arg) error {
	key, err := args[0].Enum(terminal.KeyType, terminal.Keys)
	if err != nil {
		return err
	}
	c.term.ResetBinding(key)
	return nil
}
