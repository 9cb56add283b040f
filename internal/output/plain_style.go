package output

import "strings"

// PlainTextStyle implements TextStyle without any styling.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render joins strs with spaces and adds the prefix.
func (p *PlainTextStyle) Render(strs ...string) string {
	return p.prefix + strings.Join(strs, " ")
}

// PlainStyleProvider implements StyleProvider for plain text output.
// It is used when no theme is available or when plain mode is forced.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle implements StyleProvider.GetStyle. Plain output keeps transcripts byte
// for byte equal to the logged messages, so no semantic gets a prefix.
func (p *PlainStyleProvider) GetStyle(_ string) TextStyle {
	return NewPlainTextStyle("")
}

// IsAvailable implements StyleProvider.IsAvailable.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}

// String returns a string representation for debugging.
func (p *PlainStyleProvider) String() string {
	return "PlainStyleProvider{}"
}
