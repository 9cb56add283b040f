// Package output renders console log entries to a terminal or any io.Writer.
// Styling is injected through a StyleProvider so the package has no theme dependency.
package output

// StyleProvider is implemented by themes to provide styled rendering per semantic type.
// The output package depends only on this interface, not on the theme package.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	// This allows the output system to gracefully fall back to plain text.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto styles output only when the writer is a colour capable terminal
	ModeAuto Mode = iota

	// ModeStyled forces styled output
	ModeStyled

	// ModePlain forces plain text output
	ModePlain

	// ModeJSON outputs one JSON object per entry
	ModeJSON
)

// SemanticType names what a piece of output means so themes can style it.
type SemanticType string

const (
	// SemanticPlain represents text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticMessage represents ordinary log messages.
	SemanticMessage SemanticType = "message"
	// SemanticWarning represents warnings.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents errors.
	SemanticError SemanticType = "error"
	// SemanticShell represents messages from the console itself.
	SemanticShell SemanticType = "shell"
	// SemanticInput represents echoed input lines.
	SemanticInput SemanticType = "input"
	// SemanticCommand represents a known command name.
	SemanticCommand SemanticType = "command"
	// SemanticHighlight represents emphasised text such as completion lists.
	SemanticHighlight SemanticType = "highlight"
)
