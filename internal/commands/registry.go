// Package commands collects console commands and turns them into shell registrations.
package commands

import (
	"fmt"
	"strings"
	"sync"

	"cmdterm/internal/console"
)

// Command is implemented by every console command.
type Command interface {
	// Name is the command name as typed, matched case-insensitively.
	Name() string
	// Description is the one line help text.
	Description() string
	// Usage is the syntax shown after arity errors. It may be empty.
	Usage() string
	// Descriptor returns the registration the shell installs.
	Descriptor() console.CommandDescriptor
}

// Registry keeps commands in registration order.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []string
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command. Returns an error if the command name is empty or if a
// command with the same name is already registered.
func (r *Registry) Register(cmd Command) error {
	key := console.NormalizeName(cmd.Name())
	if key == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[key]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name())
	}

	r.commands[key] = cmd
	r.order = append(r.order, key)
	return nil
}

// Unregister removes a command from the registry by name.
func (r *Registry) Unregister(name string) {
	key := console.NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[key]; !exists {
		return
	}
	delete(r.commands, key)
	for i, n := range r.order {
		if n == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[console.NormalizeName(name)]
	return cmd, exists
}

// GetAll returns the registered commands in registration order.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.commands[key])
	}
	return out
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// Descriptors returns the shell registrations of every command in registration order.
func (r *Registry) Descriptors() []console.CommandDescriptor {
	all := r.GetAll()
	out := make([]console.CommandDescriptor, 0, len(all))
	for _, cmd := range all {
		out = append(out, cmd.Descriptor())
	}
	return out
}

// Markdown renders a reference of the visible commands.
func (r *Registry) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Console commands\n\n")
	sb.WriteString("| Command | Arguments | Description |\n")
	sb.WriteString("|---|---|---|\n")

	var usages []Command
	for _, cmd := range r.GetAll() {
		d := cmd.Descriptor()
		if d.Hidden {
			continue
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", strings.ToLower(cmd.Name()), arity(d.MinArgs, d.MaxArgs), cmd.Description()))
		if cmd.Usage() != "" {
			usages = append(usages, cmd)
		}
	}

	if len(usages) > 0 {
		sb.WriteString("\n## Usage\n\n")
		for _, cmd := range usages {
			sb.WriteString(fmt.Sprintf("- `%s`\n", cmd.Usage()))
		}
	}
	return sb.String()
}

// arity describes an argument range for the reference table.
func arity(min, max int) string {
	switch {
	case max < 0 && min == 0:
		return "any"
	case max < 0:
		return fmt.Sprintf("%d or more", min)
	case min == max:
		return fmt.Sprintf("%d", min)
	default:
		return fmt.Sprintf("%d to %d", min, max)
	}
}
