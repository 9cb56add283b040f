package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"cmdterm/pkg/consoletypes"
)

// Printer writes text and log entries, styled through an optional StyleProvider.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	testMode      bool
	silent        bool
	prefix        string
	inputPrefix   string

	// Thread safety for concurrent output
	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer:      os.Stdout,
		mode:        ModeAuto,
		inputPrefix: "> ",
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Message outputs a regular log message.
func (p *Printer) Message(text string) {
	p.output(SemanticMessage, text, true)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Shell outputs a message written by the console itself.
func (p *Printer) Shell(text string) {
	p.output(SemanticShell, text, true)
}

// Highlight outputs text with highlight styling.
func (p *Printer) Highlight(text string) {
	p.output(SemanticHighlight, text, false)
}

// Command outputs a command name with command styling.
func (p *Printer) Command(text string) {
	p.output(SemanticCommand, text, false)
}

// Entry renders one log entry according to its kind.
func (p *Printer) Entry(entry consoletypes.LogEntry) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var text string
	if p.mode == ModeJSON {
		text = p.renderEntryJSON(entry)
	} else {
		text = p.renderEntry(entry)
	}
	p.write(text)
}

// Entries renders log entries in order.
func (p *Printer) Entries(entries []consoletypes.LogEntry) {
	for _, entry := range entries {
		p.Entry(entry)
	}
}

// Sprint renders a log entry to a string without writing it.
func (p *Printer) Sprint(entry consoletypes.LogEntry) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderEntry(entry)
}

func (p *Printer) renderEntry(entry consoletypes.LogEntry) string {
	semantic := SemanticForKind(entry.Kind)
	message := entry.Message
	if entry.Kind == consoletypes.LogInput {
		message = p.inputPrefix + message
	}

	result := p.render(semantic, message, true)
	if entry.StackTrace != "" && !p.testMode {
		result += p.render(SemanticMessage, indent(entry.StackTrace, "    "), true)
	}
	return result
}

func (p *Printer) renderEntryJSON(entry consoletypes.LogEntry) string {
	if p.testMode {
		entry.StackTrace = ""
	}
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return entry.Message + "\n"
	}
	return string(jsonBytes) + "\n"
}

// SemanticForKind maps a log kind to the semantic type used for styling.
func SemanticForKind(kind consoletypes.LogKind) SemanticType {
	switch kind {
	case consoletypes.LogWarning:
		return SemanticWarning
	case consoletypes.LogError:
		return SemanticError
	case consoletypes.LogShellMessage:
		return SemanticShell
	case consoletypes.LogInput:
		return SemanticInput
	default:
		return SemanticMessage
	}
}

// output is the core output method that handles all rendering logic.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	if p.mode == ModeJSON {
		finalText = p.renderJSON(semantic, text)
	} else {
		finalText = p.render(semantic, text, addNewline)
	}
	p.write(finalText)
}

func (p *Printer) write(text string) {
	if p.prefix != "" {
		body := strings.TrimSuffix(text, "\n")
		trailing := text[len(body):]
		text = p.prefix + strings.ReplaceAll(body, "\n", "\n"+p.prefix) + trailing
	}
	_, _ = fmt.Fprint(p.writer, text) // Ignore write errors for output operations
}

// render styles text when the printer is stylable and colours are wanted.
func (p *Printer) render(semantic SemanticType, text string, addNewline bool) string {
	var style TextStyle
	if p.useStyles() {
		style = p.styleProvider.GetStyle(string(semantic))
	} else {
		style = NewPlainStyleProvider().GetStyle(string(semantic))
	}

	result := style.Render(text)
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

func (p *Printer) useStyles() bool {
	if p.forcePlain || p.styleProvider == nil || !p.styleProvider.IsAvailable() {
		return false
	}
	switch p.mode {
	case ModeStyled:
		return true
	case ModeAuto:
		return SupportsColor(p.writer)
	default:
		return false
	}
}

// renderJSON renders output as structured JSON.
func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	output := map[string]interface{}{
		"type":    semantic,
		"message": text,
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return text + "\n"
	}

	return string(jsonBytes) + "\n"
}

func indent(text, pad string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// SupportsColor reports whether w is a terminal that can show colours.
func SupportsColor(w io.Writer) bool {
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// SetMode changes the output mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// SetStyleProvider changes the style provider. Pass nil to disable styling.
// The theme variable uses it to switch themes at runtime.
func (p *Printer) SetStyleProvider(provider StyleProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styleProvider = provider
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

// String returns a string representation for debugging.
func (p *Printer) String() string {
	hasStyles := "no"
	if p.IsStylable() {
		hasStyles = "yes"
	}
	return fmt.Sprintf("Printer{mode: %v, styles: %s, writer: %T}", p.mode, hasStyles, p.writer)
}
