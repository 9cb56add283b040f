package console

import (
	"errors"
	"fmt"
)

// Error kinds reported by the shell. Every error recorded in the shell's error state
// wraps exactly one of them, so callers can branch with errors.Is.
var (
	// ErrLookup is an unknown command or variable name.
	ErrLookup = errors.New("lookup failed")
	// ErrArity is a call with too few or too many arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrTypeConversion is an argument that does not parse as the requested kind.
	ErrTypeConversion = errors.New("incorrect argument type")
	// ErrEnumLookup is an argument that matches no symbol of an enumeration.
	ErrEnumLookup = errors.New("enum value not found")
	// ErrHandler is any failure raised by a command handler.
	ErrHandler = errors.New("command failed")
	// ErrRegistration is a rejected command or variable registration.
	ErrRegistration = errors.New("registration failed")
	// ErrNoSuchVariable is a variable lookup miss.
	ErrNoSuchVariable = fmt.Errorf("%w: no such variable", ErrLookup)
)

// ShellError is the shell-wide error state left behind by the last failing operation.
type ShellError struct {
	Kind       error
	Message    string
	StackTrace string
	cause      error
}

// Error returns the user-facing message (without the "Error: " prefix).
func (e *ShellError) Error() string {
	return e.Message
}

// Unwrap exposes both the error kind and, when present, the original handler error.
func (e *ShellError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// TypeError is returned by the non-reporting argument parsers.
type TypeError struct {
	Value    string
	Expected string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Incorrect type for %s, expected <%s>", e.Value, e.Expected)
}

// Is makes TypeError match ErrTypeConversion.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeConversion
}

// EnumLookupError aborts a handler whose enum argument matched no symbol.
type EnumLookupError struct {
	Value string
	Type  string
}

func (e *EnumLookupError) Error() string {
	return fmt.Sprintf("value %s not found in enumerated type %s", e.Value, e.Type)
}

// Is makes EnumLookupError match ErrEnumLookup.
func (e *EnumLookupError) Is(target error) bool {
	return target == ErrEnumLookup
}

// classify picks the error kind recorded for a handler failure.
func classify(err error) error {
	for _, kind := range []error{ErrEnumLookup, ErrTypeConversion, ErrLookup, ErrArity, ErrRegistration} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrHandler
}

// RegistrationError rejects one command or variable descriptor.
// Fatal is set for errors that abort startup registration of that entry
// (duplicate variables, unsupported variable kinds).
type RegistrationError struct {
	Name    string
	Message string
	Fatal   bool
}

func (e *RegistrationError) Error() string {
	return e.Message
}

// Is makes RegistrationError match ErrRegistration.
func (e *RegistrationError) Is(target error) bool {
	return target == ErrRegistration
}

func registrationError(name string, fatal bool, format string, args ...interface{}) error {
	return &RegistrationError{Name: name, Message: fmt.Sprintf(format, args...), Fatal: fatal}
}

// VariableLookupError is returned for an unknown variable name.
type VariableLookupError struct {
	Name string
}

func (e *VariableLookupError) Error() string {
	return fmt.Sprintf("no variable registered with name %s", e.Name)
}

// Is makes VariableLookupError match ErrNoSuchVariable and ErrLookup.
func (e *VariableLookupError) Is(target error) bool {
	return target == ErrNoSuchVariable || target == ErrLookup
}
