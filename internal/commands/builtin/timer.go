package builtin

import (
	"time"

	"cmdterm/internal/console"
	"cmdterm/internal/terminal"
)

// TimeCommand runs another command and reports how long it took.
type TimeCommand struct {
	term *terminal.Terminal
	now  func() time.Time
}

// NewTimeCommand creates a time command measuring with the wall clock.
func NewTimeCommand(term *terminal.Terminal) *TimeCommand {
	return &TimeCommand{term: term, now: time.Now}
}

// Name returns the command name "time" for registration and lookup.
func (c *TimeCommand) Name() string {
	return "time"
}

// Description returns a brief description of what the time command does.
func (c *TimeCommand) Description() string {
	return "Measure the execution time of a command"
}

// Usage returns the syntax of the time command.
func (c *TimeCommand) Usage() string {
	return ""
}

// Descriptor returns the shell registration for time.
func (c *TimeCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MinArgs: 1,
		MaxArgs: -1,
		Help:    c.Description(),
		Handler: c.Execute,
	}
}

// Execute runs the joined arguments as a command line, then logs "Time: <ms>ms".
// An error of the timed command stays in the shell error state.
func (c *TimeCommand) Execute(args []console.Arg) error {
	start := c.now()
	c.term.Shell().Run(joinArgs(args, 0))
	elapsed := c.now().Sub(start)

	c.term.Print("Time: %.4fms", float64(elapsed.Nanoseconds())/float64(time.Millisecond))
	return nil
}
