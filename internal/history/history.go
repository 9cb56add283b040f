// Package history keeps the submitted command lines and a navigation cursor.
package history

import "sync"

// DefaultCapacity is used when a history is created with a non-positive capacity.
const DefaultCapacity = 256

// History is a bounded, most-recent-last list of submitted lines.
// Duplicate lines are kept.
type History struct {
	mu       sync.Mutex
	lines    []string
	capacity int
	cursor   int
}

// New creates a history that keeps at most capacity lines.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Push appends a line and moves the cursor past the newest entry.
func (h *History) Push(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = append(h.lines, line)
	if len(h.lines) > h.capacity {
		h.lines = append(h.lines[:0], h.lines[len(h.lines)-h.capacity:]...)
	}
	h.cursor = len(h.lines)
}

// Previous steps back one line. At the oldest line it keeps returning that line.
func (h *History) Previous() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.lines) == 0 {
		return ""
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor]
}

// Next steps forward one line. Past the newest line it returns "".
func (h *History) Next() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < len(h.lines) {
		h.cursor++
	}
	if h.cursor >= len(h.lines) {
		return ""
	}
	return h.lines[h.cursor]
}

// Lines returns a copy of the history, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.lines...)
}

// Len returns the number of stored lines.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}

// Clear forgets every line.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
	h.cursor = 0
}
