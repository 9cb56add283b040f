package console

import (
	"errors"
	"strings"

	"cmdterm/internal/logger"
	"cmdterm/pkg/consoletypes"
)

// CommandDescriptor is one entry of the declarative command list supplied by the host.
//
// When Name is empty it is derived from Identifier (the handler's identifier) by removing
// a "COMMAND" marker, e.g. "CommandClear" becomes "Clear". Front descriptors carry no
// handler: they only supply arity and help for a same-named command registered elsewhere.
type CommandDescriptor struct {
	Name       string
	Identifier string
	MinArgs    int
	MaxArgs    int
	Help       string
	Usage      string
	Hidden     bool
	Handler    Handler
	Front      bool
}

// VariableDescriptor is one entry of the declarative variable list supplied by the host.
type VariableDescriptor struct {
	Name       string
	Identifier string
	Kind       consoletypes.ValueKind
	Get        func() interface{}
	Set        func(value interface{})
	Symbols    []string
	// Validate, when set, vets a converted value before Set sees it.
	Validate func(value interface{}) error
}

// InferCommandName removes the first case-insensitive "COMMAND" marker from an identifier.
func InferCommandName(identifier string) string {
	return removeMarker(identifier, "COMMAND")
}

// inferFrontCommandName removes a "FRONT" marker and then a "COMMAND" marker.
func inferFrontCommandName(identifier string) string {
	return InferCommandName(removeMarker(identifier, "FRONT"))
}

func removeMarker(identifier, marker string) string {
	upper := strings.ToUpper(identifier)
	if len(upper) != len(identifier) {
		return identifier
	}
	if index := strings.Index(upper, marker); index >= 0 {
		return identifier[:index] + identifier[index+len(marker):]
	}
	return identifier
}

// Register loads the host's declarative command and variable lists.
//
// Non-fatal problems (duplicate commands, front commands without an implementation) skip
// the entry, are kept for RegistrationWarnings and leave the last one in the error state.
// Fatal problems (duplicate variables, unsupported variable kinds) skip the entry and are
// returned joined together.
func (s *Shell) Register(commands []CommandDescriptor, variables []VariableDescriptor) error {
	s.warnings = nil
	var fronts []CommandSpec

	for _, d := range commands {
		name := d.Name
		if name == "" {
			if d.Front {
				name = inferFrontCommandName(d.Identifier)
			} else {
				name = InferCommandName(d.Identifier)
			}
		}

		spec := CommandSpec{
			Name:    name,
			Handler: d.Handler,
			MinArgs: d.MinArgs,
			MaxArgs: d.MaxArgs,
			Help:    d.Help,
			Usage:   d.Usage,
			Hidden:  d.Hidden,
		}

		if d.Front || d.Handler == nil {
			fronts = append(fronts, spec)
			continue
		}

		if err := s.registry.AddCommand(spec); err != nil {
			s.reportRegistration(name, err)
		}
	}

	// Placeholders are resolved once every implementation is known.
	for _, placeholder := range fronts {
		if !s.registry.backfill(placeholder) {
			name := NormalizeName(placeholder.Name)
			s.reportRegistration(name, registrationError(name, false, "%s is missing a front command.", name))
		}
	}

	var fatal []error
	for _, d := range variables {
		name := d.Name
		if name == "" {
			name = d.Identifier
		}

		err := s.registry.AddVariable(VariableSpec{
			Name:     name,
			Kind:     d.Kind,
			Get:      d.Get,
			Set:      d.Set,
			Symbols:  d.Symbols,
			Validate: d.Validate,
		})
		if err != nil {
			logger.RegistrationIssue(name, err, true)
			fatal = append(fatal, err)
		}
	}

	return errors.Join(fatal...)
}

// RegistrationWarnings returns the non-fatal problems of the latest Register call in the
// order they were found.
func (s *Shell) RegistrationWarnings() []error {
	return append([]error(nil), s.warnings...)
}

func (s *Shell) reportRegistration(name string, err error) {
	logger.RegistrationIssue(name, err, false)
	s.warnings = append(s.warnings, err)
	s.Report(ErrRegistration, "%s", err.Error())
}
