package builtin

import (
	"errors"

	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
	"cmdterm/pkg/consoletypes"
)

// CopyCommand copies the message logged before it to the system clipboard.
type CopyCommand struct {
	term *terminal.Terminal
}

// Name returns the command name "copy" for registration and lookup.
func (c *CopyCommand) Name() string {
	return "copy"
}

// Description returns a brief description of what the copy command does.
func (c *CopyCommand) Description() string {
	return "Copy the previous message to the clipboard"
}

// Usage returns the syntax of the copy command.
func (c *CopyCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for copy.
func (c *CopyCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MaxArgs: 0,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute writes the previous message to the clipboard.
func (c *CopyCommand) Execute(_ []console.Arg) error {
	entry, ok := previousEntry(c.term)
	if !ok {
		return errors.New("nothing to copy")
	}

	if err := initClipboard(); err != nil {
		return err
	}
	if err := writeToClipboard(entry.Message); err != nil {
		return err
	}

	c.term.Print("Copied %d characters to the clipboard.", len([]rune(entry.Message)))
	return nil
}

// previousEntry returns the entry logged just before the running command's input line.
func previousEntry(term *terminal.Terminal) (consoletypes.LogEntry, bool) {
	n := term.Buffer().Len()
	if n-2 < 0 {
		return consoletypes.LogEntry{}, false
	}
	return term.Buffer().At(n - 2)
}
