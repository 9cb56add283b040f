package console

import (
	"fmt"

	"cmdterm/pkg/consoletypes"
)

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

type memoryTranscript struct {
	entries []consoletypes.LogEntry
}

func (m *memoryTranscript) Append(entry consoletypes.LogEntry) {
	m.entries = append(m.entries, entry)
}

// newTestShell returns a shell whose Input echoes are recorded.
func newTestShell() (*Shell, *memoryTranscript) {
	transcript := &memoryTranscript{}
	return NewShell(WithTranscript(transcript)), transcript
}
