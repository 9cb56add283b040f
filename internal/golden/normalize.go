package golden

import (
	"regexp"
	"strings"
)

// pattern replaces volatile transcript content with a named placeholder.
type pattern struct {
	name string
	re   *regexp.Regexp
	repl string
}

// Normalizer rewrites timings and identifiers so transcripts compare across runs.
type Normalizer struct {
	patterns []pattern
}

// NewNormalizer creates a normalizer with the built-in patterns.
func NewNormalizer() *Normalizer {
	return &Normalizer{patterns: []pattern{
		{
			name: "DURATION",
			re:   regexp.MustCompile(`Time: \d+(?:\.\d+)?ms`),
			repl: "Time: <DURATION>ms",
		},
		{
			name: "UUID",
			re:   regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`),
			repl: "<UUID>",
		},
		{
			name: "VERSION",
			re:   regexp.MustCompile(`(?m)cmdterm v.*$`),
			repl: "cmdterm <VERSION>",
		},
	}}
}

// Normalize applies every pattern to output.
func (n *Normalizer) Normalize(output string) string {
	for _, p := range n.patterns {
		output = p.re.ReplaceAllString(output, p.repl)
	}
	return output
}

// Equal compares two transcripts line by line after normalizing both.
func (n *Normalizer) Equal(expected, actual string) bool {
	expectedLines := strings.Split(n.Normalize(expected), "\n")
	actualLines := strings.Split(n.Normalize(actual), "\n")

	if len(expectedLines) != len(actualLines) {
		return false
	}
	for i := range expectedLines {
		if expectedLines[i] != actualLines[i] {
			return false
		}
	}
	return true
}

// clean drops trailing newlines but keeps trailing spaces inside lines.
func clean(output string) string {
	return strings.TrimRight(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
}
