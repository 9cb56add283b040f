package console

import (
	"strings"
	"sync"

	"cmdterm/pkg/consoletypes"
)

// Handler executes a command with its arguments (the command name already removed).
type Handler func(args []Arg) error

// CommandSpec is one registered command. MaxArgs of -1 means unbounded.
type CommandSpec struct {
	Name    string
	Handler Handler
	MinArgs int
	MaxArgs int
	Help    string
	Usage   string
	Hidden  bool
}

// VariableSpec is one registered variable. Get returns and Set receives a value of the
// Go type matching Kind: string, int, float64, bool, or the canonical symbol string for enums.
type VariableSpec struct {
	Name     string
	Kind     consoletypes.ValueKind
	Get      func() interface{}
	Set      func(value interface{})
	Symbols  []string
	Validate func(value interface{}) error
}

// Registry maps upper-case names to commands and variables.
// Iteration order is registration order.
type Registry struct {
	mu            sync.RWMutex
	commands      map[string]CommandSpec
	commandOrder  []string
	variables     map[string]VariableSpec
	variableOrder []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]CommandSpec),
		variables: make(map[string]VariableSpec),
	}
}

// NormalizeName is the canonical storage and lookup form of a command or variable name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// AddCommand stores a command. Duplicate names and invalid arity bounds are rejected.
func (r *Registry) AddCommand(spec CommandSpec) error {
	name := NormalizeName(spec.Name)
	if name == "" {
		return registrationError("", false, "command name cannot be empty")
	}
	if spec.MinArgs < 0 || spec.MaxArgs < -1 || (spec.MaxArgs != -1 && spec.MinArgs > spec.MaxArgs) {
		return registrationError(name, false, "Command %s has invalid argument bounds (%d, %d)", name, spec.MinArgs, spec.MaxArgs)
	}
	spec.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return registrationError(name, false, "Command %s is already defined.", name)
	}

	r.commands[name] = spec
	r.commandOrder = append(r.commandOrder, name)
	return nil
}

// AddVariable stores a variable. Unsupported kinds and duplicate names are rejected.
func (r *Registry) AddVariable(spec VariableSpec) error {
	name := NormalizeName(spec.Name)
	if name == "" {
		return registrationError("", true, "variable name cannot be empty")
	}
	if !spec.Kind.Valid() {
		return registrationError(name, true, "can't register variable %s - registered variables must be string, int, float, bool or enum", name)
	}
	if spec.Kind == consoletypes.KindEnum && len(spec.Symbols) == 0 {
		return registrationError(name, true, "enum variable %s has no symbols", name)
	}
	if spec.Get == nil || spec.Set == nil {
		return registrationError(name, true, "variable %s needs both a getter and a setter", name)
	}
	spec.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variables[name]; exists {
		return registrationError(name, true, "there is already a variable called %s", name)
	}

	r.variables[name] = spec
	r.variableOrder = append(r.variableOrder, name)
	return nil
}

// Command looks a command up by name, case-insensitively.
func (r *Registry) Command(name string) (CommandSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.commands[NormalizeName(name)]
	return spec, ok
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []CommandSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]CommandSpec, 0, len(r.commandOrder))
	for _, name := range r.commandOrder {
		specs = append(specs, r.commands[name])
	}
	return specs
}

// Variable looks a variable up by name, case-insensitively.
func (r *Registry) Variable(name string) (VariableSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.variables[NormalizeName(name)]
	return spec, ok
}

// Variables returns every variable in registration order.
func (r *Registry) Variables() []VariableSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]VariableSpec, 0, len(r.variableOrder))
	for _, name := range r.variableOrder {
		specs = append(specs, r.variables[name])
	}
	return specs
}

// backfill copies arity and help from a front-command placeholder onto the registered
// command of the same name, keeping its handler. It reports whether the command exists.
func (r *Registry) backfill(placeholder CommandSpec) bool {
	name := NormalizeName(placeholder.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	spec, exists := r.commands[name]
	if !exists {
		return false
	}

	spec.MinArgs = placeholder.MinArgs
	spec.MaxArgs = placeholder.MaxArgs
	spec.Help = placeholder.Help
	r.commands[name] = spec
	return true
}
