// Package consoletypes defines the data types shared across the cmdterm console engine.
// This file contains the log entry classification used by the log buffer, the terminal
// and the output printer.
package consoletypes

import (
	"fmt"
	"strings"
)

// LogKind classifies a console log line. The host display uses it to pick a colour.
type LogKind int

const (
	// LogMessage is a plain message emitted by a command or the host.
	LogMessage LogKind = iota
	// LogWarning is a host warning.
	LogWarning
	// LogError is an error, including every rendered shell error ("Error: ...").
	LogError
	// LogShellMessage is output written by the shell itself (help listings, timings).
	LogShellMessage
	// LogInput is the transcript of a submitted input line.
	LogInput
)

var logKindNames = map[LogKind]string{
	LogMessage:      "message",
	LogWarning:      "warning",
	LogError:        "error",
	LogShellMessage: "shell",
	LogInput:        "input",
}

// String returns the lower-case name of the kind.
func (k LogKind) String() string {
	if name, ok := logKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LogKind(%d)", int(k))
}

// ParseLogKind converts a kind name (case-insensitive) back to a LogKind.
func ParseLogKind(name string) (LogKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range logKindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return LogMessage, fmt.Errorf("unknown log kind %q", name)
}

// LogEntry is one line held by the log buffer. Entries are never mutated after insertion.
type LogEntry struct {
	Message    string  `json:"message"`
	Kind       LogKind `json:"kind"`
	StackTrace string  `json:"stack_trace,omitempty"`
}

// MarshalText encodes the kind by name so JSON transcripts stay readable.
func (k LogKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *LogKind) UnmarshalText(text []byte) error {
	kind, err := ParseLogKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
