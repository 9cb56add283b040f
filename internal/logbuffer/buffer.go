// Package logbuffer holds the bounded transcript of console output.
// It is a fixed-capacity ring: appending to a full buffer evicts the oldest entry.
package logbuffer

import (
	"sync"

	"cmdterm/pkg/consoletypes"
)

// DefaultCapacity is used when a buffer is created with a non-positive capacity.
const DefaultCapacity = 512

// Buffer is a mutex-guarded ring of log entries, oldest first.
type Buffer struct {
	mu      sync.RWMutex
	entries []consoletypes.LogEntry
	start   int
	size    int
	total   uint64
}

// New creates a buffer that keeps at most capacity entries.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{entries: make([]consoletypes.LogEntry, capacity)}
}

// Append adds an entry, evicting the oldest one when the buffer is full.
func (b *Buffer) Append(entry consoletypes.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.entries)
	if b.size < capacity {
		b.entries[(b.start+b.size)%capacity] = entry
		b.size++
	} else {
		b.entries[b.start] = entry
		b.start = (b.start + 1) % capacity
	}
	b.total++
}

// Entries returns a copy of the buffered entries from oldest to newest.
func (b *Buffer) Entries() []consoletypes.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.copyLast(b.size)
}

// Since returns the entries appended after the buffer's Total was mark.
// Entries that were already evicted are skipped.
func (b *Buffer) Since(mark uint64) []consoletypes.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if mark >= b.total {
		return nil
	}
	n := b.total - mark
	if n > uint64(b.size) {
		n = uint64(b.size)
	}
	return b.copyLast(int(n))
}

func (b *Buffer) copyLast(n int) []consoletypes.LogEntry {
	out := make([]consoletypes.LogEntry, 0, n)
	capacity := len(b.entries)
	for i := b.size - n; i < b.size; i++ {
		out = append(out, b.entries[(b.start+i)%capacity])
	}
	return out
}

// At returns the i-th entry, counting from the oldest.
func (b *Buffer) At(i int) (consoletypes.LogEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= b.size {
		return consoletypes.LogEntry{}, false
	}
	return b.entries[(b.start+i)%len(b.entries)], true
}

// Last returns the newest entry.
func (b *Buffer) Last() (consoletypes.LogEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.size == 0 {
		return consoletypes.LogEntry{}, false
	}
	return b.entries[(b.start+b.size-1)%len(b.entries)], true
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// Total returns how many entries were ever appended.
func (b *Buffer) Total() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.total
}

// Clear drops every entry. Capacity and Total are unchanged.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		b.entries[i] = consoletypes.LogEntry{}
	}
	b.start = 0
	b.size = 0
}
