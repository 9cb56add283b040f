package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// TraceCommand shows the stack trace of the entry logged before the trace command.
type TraceCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "trace" for registration and lookup.
func (c *TraceCommand) Name() string {
	return "trace"
}

// Description returns a brief description of what the trace command does.
func (c *TraceCommand) Description() string {
	return "Output the stack trace of the previous message"
}

// Usage returns the syntax of the trace command.
func (c *TraceCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for trace.
func (c *TraceCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute looks two entries back: the newest entry is the trace input line itself.
func (c *TraceCommand) Execute(_ []console.Arg) error {
	entry, ok := previousEntry(c.term)
	if !ok {
		c.term.Print("Nothing to trace.")
		return nil
	}

	if entry.StackTrace == "" {
		c.term.Print("%s (no trace)", entry.Message)
	} else {
		c.term.Print("%s", entry.StackTrace)
	}
	return nil
}
