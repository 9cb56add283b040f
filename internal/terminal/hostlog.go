package terminal

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"cmdterm/pkg/consoletypes"
)

// HandleHostLog copies a log line from the host application into the buffer, unless
// the HandleHostLog variable is off.
func (t *Terminal) HandleHostLog(message, stackTrace string, kind consoletypes.LogKind) {
	if !t.HandlesHostLog() {
		return
	}
	t.buffer.Append(consoletypes.LogEntry{Message: message, Kind: kind, StackTrace: stackTrace})
}

// HostLogWriter returns a writer for the host's logger output. Each complete line
// becomes a log entry whose kind is taken from the charmbracelet/log level prefix.
func (t *Terminal) HostLogWriter() io.Writer {
	return &hostLogWriter{t: t}
}

type hostLogWriter struct {
	t       *Terminal
	mu      sync.Mutex
	partial []byte
}

func (w *hostLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		line := string(w.partial[:i])
		w.partial = w.partial[i+1:]
		w.emit(line)
	}
	return len(p), nil
}

func (w *hostLogWriter) emit(line string) {
	line = strings.TrimRight(ansi.Strip(line), "\r ")
	if line == "" {
		return
	}
	kind, message := splitLevel(line)
	w.t.HandleHostLog(message, "", kind)
}

// splitLevel maps the level column written by charmbracelet/log to a log kind.
func splitLevel(line string) (consoletypes.LogKind, string) {
	level, rest, found := strings.Cut(line, " ")
	if !found {
		return consoletypes.LogMessage, line
	}
	switch level {
	case "WARN":
		return consoletypes.LogWarning, rest
	case "ERRO", "FATA":
		return consoletypes.LogError, rest
	case "DEBU", "INFO":
		return consoletypes.LogMessage, rest
	default:
		return consoletypes.LogMessage, line
	}
}
