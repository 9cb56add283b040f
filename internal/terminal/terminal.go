// Package terminal is the console session object. A Terminal owns the shell, its log
// buffer, history, completion index, scheduler and key bindings, and exposes the host
// hooks (entering lines, completion, history navigation, per-tick updates).
//
// A Terminal is meant to be driven from one goroutine, the host loop. Log writes from
// other goroutines are safe because the log buffer is synchronized.
package terminal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"cmdterm/internal/autocomplete"
	"cmdterm/internal/config"
	"cmdterm/internal/console"
	"cmdterm/internal/history"
	"cmdterm/internal/logbuffer"
	"cmdterm/internal/logger"
	"cmdterm/internal/scheduler"
	"cmdterm/internal/theme"
	"cmdterm/pkg/consoletypes"
)

// Terminal is one console session.
type Terminal struct {
	cfg      config.Config
	shell    *console.Shell
	buffer   *logbuffer.Buffer
	history  *history.History
	complete *autocomplete.Index
	sched    *scheduler.Scheduler
	themes   *theme.Service

	mu                sync.RWMutex
	bindings          map[string][]string
	timeScale         float64
	handleHostLog     bool
	prompt            string
	themeName         string
	completionPadding int
	exitRequested     bool
	onTheme           func(*theme.Theme)
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithThemes uses an existing theme service instead of loading the embedded themes.
func WithThemes(s *theme.Service) Option {
	return func(t *Terminal) {
		if s != nil {
			t.themes = s
		}
	}
}

// WithThemeHook registers a callback invoked whenever the Theme variable changes.
func WithThemeHook(fn func(*theme.Theme)) Option {
	return func(t *Terminal) {
		t.onTheme = fn
	}
}

// New creates a Terminal sized and initialised from cfg.
func New(cfg config.Config, opts ...Option) *Terminal {
	t := &Terminal{
		cfg:               cfg,
		buffer:            logbuffer.New(cfg.BufferSize),
		history:           history.New(cfg.HistorySize),
		complete:          autocomplete.New(),
		sched:             scheduler.New(),
		bindings:          make(map[string][]string),
		timeScale:         cfg.TimeScale,
		handleHostLog:     cfg.HandleHostLog,
		prompt:            cfg.Prompt,
		themeName:         cfg.Theme,
		completionPadding: cfg.CompletionPadding,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.themes == nil {
		t.themes = theme.NewService()
	}
	if _, ok := t.themes.Get(t.themeName); !ok {
		t.themeName = theme.Plain
	}
	t.shell = console.NewShell(console.WithTranscript(t.buffer))
	return t
}

// Shell returns the command shell.
func (t *Terminal) Shell() *console.Shell { return t.shell }

// Buffer returns the log buffer.
func (t *Terminal) Buffer() *logbuffer.Buffer { return t.buffer }

// History returns the input history.
func (t *Terminal) History() *history.History { return t.history }

// Completer returns the completion index.
func (t *Terminal) Completer() *autocomplete.Index { return t.complete }

// Scheduler returns the delayed command queue.
func (t *Terminal) Scheduler() *scheduler.Scheduler { return t.sched }

// Themes returns the theme service.
func (t *Terminal) Themes() *theme.Service { return t.themes }

// Config returns the configuration the terminal was created with.
func (t *Terminal) Config() config.Config { return t.cfg }

// Register installs commands and variables and fills the completion index with the
// visible commands followed by the variables. Registration problems are logged as
// errors; the fatal ones are also returned.
func (t *Terminal) Register(commands []console.CommandDescriptor, variables []console.VariableDescriptor) error {
	err := t.shell.Register(commands, variables)

	for _, warning := range t.shell.RegistrationWarnings() {
		t.Log(consoletypes.LogError, "Error: %s", warning.Error())
	}
	t.shell.ClearError()
	for _, fatal := range unjoin(err) {
		t.Log(consoletypes.LogError, "Error: %s", fatal.Error())
	}

	for _, cmd := range t.shell.Registry().Commands() {
		if !cmd.Hidden {
			t.complete.Register(cmd.Name)
		}
	}
	for _, v := range t.shell.Registry().Variables() {
		t.complete.Register(v.Name)
	}
	return err
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

// EnterCommand submits a line typed by the user. Non-blank lines are added to the
// history. A failure is logged as "Error: <message>" and returned.
func (t *Terminal) EnterCommand(line string) error {
	if strings.TrimSpace(line) != "" {
		t.history.Push(line)
	}
	return t.execute(line)
}

// execute runs a line without touching the history and logs the resulting error.
func (t *Terminal) execute(line string) error {
	t.shell.Run(line)

	msg, failed := t.shell.Error()
	if !failed {
		return nil
	}

	entry := consoletypes.LogEntry{Message: "Error: " + msg, Kind: consoletypes.LogError}
	var shellErr *console.ShellError
	if errors.As(t.shell.Err(), &shellErr) {
		entry.StackTrace = shellErr.StackTrace
	}
	t.buffer.Append(entry)
	return t.shell.Err()
}

// Log appends a formatted entry of the given kind.
func (t *Terminal) Log(kind consoletypes.LogKind, format string, args ...interface{}) {
	t.buffer.Append(consoletypes.LogEntry{Message: fmt.Sprintf(format, args...), Kind: kind})
}

// Print appends a shell message. Built-in commands write their output with it.
func (t *Terminal) Print(format string, args ...interface{}) {
	t.Log(consoletypes.LogShellMessage, format, args...)
}

// LogMessage appends a plain message.
func (t *Terminal) LogMessage(message string) {
	t.buffer.Append(consoletypes.LogEntry{Message: message, Kind: consoletypes.LogMessage})
}

// CompleteCommand performs Tab completion on line and returns the new line. With a
// single match the last word is replaced. With several, the matches are logged on one
// line, each padded to the longest match plus CompletionPadding.
func (t *Terminal) CompleteCommand(line string) string {
	result := t.complete.CompleteLine(line)
	if len(result.Matches) > 1 {
		width := result.Width + t.CompletionPadding()
		var sb strings.Builder
		for _, match := range result.Matches {
			sb.WriteString(fmt.Sprintf("%-*s", width, match))
		}
		t.Print("%s", sb.String())
	}
	return result.Text
}

// Previous returns the previous history line.
func (t *Terminal) Previous() string { return t.history.Previous() }

// Next returns the next history line, or "" past the newest.
func (t *Terminal) Next() string { return t.history.Next() }

// RequestExit asks the host to end the session.
func (t *Terminal) RequestExit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exitRequested = true
}

// ExitRequested reports whether exit was requested.
func (t *Terminal) ExitRequested() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.exitRequested
}

// TimeScale returns the multiplier applied to the scaled clock.
func (t *Terminal) TimeScale() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.timeScale
}

// SetTimeScale changes the scaled clock multiplier. NaN and infinite scales are ignored.
func (t *Terminal) SetTimeScale(scale float64) {
	if err := ValidateTimeScale(scale); err != nil {
		logger.Warn("Time scale rejected", "scale", scale)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeScale = scale
}

// ValidateTimeScale rejects NaN and infinite time scales.
func ValidateTimeScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return &console.TypeError{Value: strconv.FormatFloat(scale, 'g', -1, 64), Expected: "finite float"}
	}
	return nil
}

// HandlesHostLog reports whether host log lines are copied into the buffer.
func (t *Terminal) HandlesHostLog() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.handleHostLog
}

// SetHandleHostLog enables or disables host log capture.
func (t *Terminal) SetHandleHostLog(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handleHostLog = enabled
}

// Prompt returns the interactive prompt.
func (t *Terminal) Prompt() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.prompt
}

// SetPrompt changes the interactive prompt.
func (t *Terminal) SetPrompt(prompt string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prompt = prompt
}

// CompletionPadding returns the spacing added between listed completions.
func (t *Terminal) CompletionPadding() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.completionPadding
}

// SetCompletionPadding changes the completion spacing. Negative values count as zero.
func (t *Terminal) SetCompletionPadding(padding int) {
	if padding < 0 {
		padding = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completionPadding = padding
}

// ThemeName returns the active theme name.
func (t *Terminal) ThemeName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.themeName
}

// Theme returns the active theme.
func (t *Terminal) Theme() *theme.Theme {
	return t.themes.ByName(t.ThemeName())
}

// SetTheme switches the active theme and notifies the theme hook.
func (t *Terminal) SetTheme(name string) error {
	th, ok := t.themes.Get(name)
	if !ok {
		return fmt.Errorf("unknown theme %s", name)
	}

	t.mu.Lock()
	t.themeName = th.Name
	hook := t.onTheme
	t.mu.Unlock()

	logger.Debug("Theme changed", "theme", th.Name)
	if hook != nil {
		hook(th)
	}
	return nil
}
