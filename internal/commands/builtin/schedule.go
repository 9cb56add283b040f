package builtin

import (
	"cmdterm/internal/console"
	"cmdterm/internal/logger"
	"cmdterm/internal/terminal"
)

// ScheduleCommand runs a command after a delay in seconds. The scaled variant follows
// the TimeScale variable, the unscaled one wall time.
type ScheduleCommand struct {
	term   *terminal.Terminal
	scaled bool
}

// Name returns "schedule" or "scheduleunscaled".
func (c *ScheduleCommand) Name() string {
	if c.scaled {
		return "schedule"
	}
	return "scheduleunscaled"
}

// Description returns a brief description of what the command does.
func (c *ScheduleCommand) Description() string {
	if c.scaled {
		return "Schedule a command to be executed some time in the future"
	}
	return "Schedule a command ignoring the time scale"
}

// Usage returns the syntax shared by both schedule commands.
func (c *ScheduleCommand) Usage() string {
	return "schedule [delay] [command] - delay is in seconds"
}

// Descriptor returns the shell registration.
func (c *ScheduleCommand) Descriptor() console.CommandDescriptor {
	return console.CommandDescriptor{
		Name:    c.Name(),
		MinArgs: 2,
		MaxArgs: -1,
		Help:    c.Description(),
		Usage:   c.Usage(),
		Handler: c.Execute,
	}
}

// Execute queues the command line made of args[1:].
func (c *ScheduleCommand) Execute(args []console.Arg) error {
	delay, err := args[0].ParseFloat()
	if err != nil {
		return err
	}

	command := joinArgs(args, 1)
	id, err := c.term.Schedule(delay, command, c.scaled)
	if err != nil {
		return &console.TypeError{Value: args[0].String(), Expected: "float"}
	}
	logger.Debug("Command scheduled", "id", id, "delay", delay, "scaled", c.scaled, "command", command)
	return nil
}
