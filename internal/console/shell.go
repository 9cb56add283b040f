// Package console implements the command shell engine: typed arguments, the command and
// variable registry, and the dispatcher that validates arity, invokes handlers and keeps
// the shell-wide error state.
package console

import (
	"errors"
	"fmt"
	"runtime/debug"

	"cmdterm/internal/logger"
	"cmdterm/internal/parser"
	"cmdterm/pkg/consoletypes"
)

// Transcript receives the Input entry emitted for every line passed to Run.
// The terminal's log buffer implements it.
type Transcript interface {
	Append(entry consoletypes.LogEntry)
}

// Shell parses input lines and dispatches them to registered commands.
// It is driven from a single host loop; Run may be re-entered from a handler.
type Shell struct {
	registry   *Registry
	transcript Transcript
	err        *ShellError
	warnings   []error
}

// Option configures a Shell.
type Option func(*Shell)

// WithTranscript sets where submitted lines are echoed as Input entries.
func WithTranscript(t Transcript) Option {
	return func(s *Shell) {
		s.transcript = t
	}
}

// WithRegistry makes the shell use an existing registry.
func WithRegistry(r *Registry) Option {
	return func(s *Shell) {
		if r != nil {
			s.registry = r
		}
	}
}

// NewShell creates a shell with an empty registry.
func NewShell(options ...Option) *Shell {
	s := &Shell{registry: NewRegistry()}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Registry returns the shell's command and variable registry.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Run parses one input line and executes it. Failures never escape: they are left in
// the error state, which the caller inspects with Error after Run returns.
func (s *Shell) Run(line string) {
	if s.transcript != nil {
		s.transcript.Append(consoletypes.LogEntry{Message: line, Kind: consoletypes.LogInput})
	}
	s.ClearError()

	tokens := parser.Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	name := NormalizeName(tokens[0])
	args := make([]Arg, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		args = append(args, NewArg(token, s))
	}

	cmd, ok := s.registry.Command(name)
	if !ok {
		s.Report(ErrLookup, "Command %s could not be found", name)
		return
	}

	s.invoke(cmd, args)
}

// invoke validates arity and calls the handler.
func (s *Shell) invoke(cmd CommandSpec, args []Arg) {
	logger.CommandExecution(cmd.Name, Strings(args))

	if msg := arityMessage(cmd, len(args)); msg != "" {
		s.Report(ErrArity, "%s", msg)
		s.appendUsage(cmd)
		return
	}

	if cmd.Handler == nil {
		s.Report(ErrHandler, "Command %s has no implementation", cmd.Name)
		return
	}

	if err := s.call(cmd, args); err != nil {
		s.err = &ShellError{Kind: classify(err), Message: err.Error(), cause: err}
		var panicked *panicError
		if errors.As(err, &panicked) {
			s.err.StackTrace = panicked.stack
		}
	}

	if s.err != nil {
		s.appendUsage(cmd)
	}
}

type panicError struct {
	value interface{}
	stack string
}

func (e *panicError) Error() string {
	return fmt.Sprint(e.value)
}

// call runs the handler and converts a panic into an error.
func (s *Shell) call(cmd CommandSpec, args []Arg) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: string(debug.Stack())}
		}
	}()
	return cmd.Handler(args)
}

// arityMessage returns the arity error for n arguments, or "" when n is acceptable.
func arityMessage(cmd CommandSpec, n int) string {
	var bound string
	var required int

	switch {
	case n < cmd.MinArgs:
		bound = "at least"
		required = cmd.MinArgs
	case cmd.MaxArgs > -1 && n > cmd.MaxArgs:
		bound = "at most"
		required = cmd.MaxArgs
	default:
		return ""
	}

	if cmd.MinArgs == cmd.MaxArgs {
		bound = "exactly"
	}

	plural := "s"
	if required == 1 {
		plural = ""
	}

	return fmt.Sprintf("%s requires %s %d argument%s", cmd.Name, bound, required, plural)
}

func (s *Shell) appendUsage(cmd CommandSpec) {
	if cmd.Usage != "" && s.err != nil {
		s.err.Message += fmt.Sprintf("\n    -> Usage: %s", cmd.Usage)
	}
}

// Report records an error of the given kind. The last report wins.
func (s *Shell) Report(kind error, format string, args ...interface{}) {
	s.err = &ShellError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IssueError records a generic handler error message.
func (s *Shell) IssueError(format string, args ...interface{}) {
	s.Report(ErrHandler, format, args...)
}

// ClearError resets the error state.
func (s *Shell) ClearError() {
	s.err = nil
}

// Error returns the current error message and whether one is set.
func (s *Shell) Error() (string, bool) {
	if s.err == nil {
		return "", false
	}
	return s.err.Message, true
}

// Err returns the current error state as an error, or nil.
func (s *Shell) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}
