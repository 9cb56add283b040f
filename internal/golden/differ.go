package golden

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MismatchError reports a transcript that differs from the recorded one.
type MismatchError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("golden test %s failed: output doesn't match expected\n%s", e.Name, Diff(e.Expected, e.Actual))
}

// Diff renders a line-level diff of two transcripts. Removed lines start with "-",
// added lines with "+" and unchanged lines with two spaces.
func Diff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		marker := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "- "
		case diffmatchpatch.DiffInsert:
			marker = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(marker)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
