package logbuffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdterm/pkg/consoletypes"
)

func entry(msg string) consoletypes.LogEntry {
	return consoletypes.LogEntry{Message: msg, Kind: consoletypes.LogMessage}
}

func messages(entries []consoletypes.LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, DefaultCapacity, New(-3).Cap())
	assert.Equal(t, 7, New(7).Cap())
}

func TestBuffer_EvictsOldest(t *testing.T) {
	b := New(3)
	for _, m := range []string{"1", "2", "3", "4", "5"} {
		b.Append(entry(m))
	}

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, uint64(5), b.Total())
	assert.Equal(t, []string{"3", "4", "5"}, messages(b.Entries()))

	first, ok := b.At(0)
	require.True(t, ok)
	assert.Equal(t, "3", first.Message)

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "5", last.Message)

	_, ok = b.At(3)
	assert.False(t, ok)
}

func TestBuffer_NeverExceedsCapacity(t *testing.T) {
	b := New(16)
	for i := 0; i < 100; i++ {
		b.Append(entry(fmt.Sprint(i)))
		assert.LessOrEqual(t, b.Len(), b.Cap())
	}
	assert.Equal(t, "84", messages(b.Entries())[0])
}

func TestBuffer_Since(t *testing.T) {
	b := New(4)
	b.Append(entry("a"))
	mark := b.Total()

	assert.Empty(t, b.Since(mark))

	b.Append(entry("b"))
	b.Append(entry("c"))
	assert.Equal(t, []string{"b", "c"}, messages(b.Since(mark)))

	for _, m := range []string{"d", "e", "f", "g"} {
		b.Append(entry(m))
	}
	assert.Equal(t, []string{"d", "e", "f", "g"}, messages(b.Since(mark)), "evicted entries are skipped")
}

func TestBuffer_Clear(t *testing.T) {
	b := New(2)
	b.Append(entry("a"))
	b.Append(entry("b"))
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, uint64(2), b.Total())
	_, ok := b.Last()
	assert.False(t, ok)

	b.Append(entry("c"))
	assert.Equal(t, []string{"c"}, messages(b.Entries()))
}
