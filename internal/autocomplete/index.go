// Package autocomplete completes command and variable names by case-insensitive prefix.
// The Index doubles as the readline.AutoCompleter of the interactive shell.
package autocomplete

import (
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

var _ readline.AutoCompleter = (*Index)(nil)

// Completion is the outcome of completing a partial word.
type Completion struct {
	// Matches lists every symbol starting with the partial word, in registration order.
	Matches []string
	// Width is the length of the longest match, used to lay the list out in columns.
	Width int
	// Text is the single match when there is exactly one, otherwise the unchanged input.
	Text string
}

// Index is an ordered set of completable symbols.
type Index struct {
	mu      sync.RWMutex
	symbols []string
	seen    map[string]bool
}

// New creates an empty index.
func New() *Index {
	return &Index{seen: make(map[string]bool)}
}

// Register adds a symbol. Symbols are stored upper-case and duplicates are ignored.
func (x *Index) Register(name string) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.seen[name] {
		return
	}
	x.seen[name] = true
	x.symbols = append(x.symbols, name)
}

// Symbols returns a copy of the registered symbols.
func (x *Index) Symbols() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]string(nil), x.symbols...)
}

// Complete matches partial against every symbol. An empty partial matches everything.
func (x *Index) Complete(partial string) Completion {
	x.mu.RLock()
	defer x.mu.RUnlock()

	prefix := strings.ToUpper(partial)
	result := Completion{Text: partial}
	for _, symbol := range x.symbols {
		if !strings.HasPrefix(symbol, prefix) {
			continue
		}
		result.Matches = append(result.Matches, symbol)
		if len(symbol) > result.Width {
			result.Width = len(symbol)
		}
	}
	if len(result.Matches) == 1 {
		result.Text = result.Matches[0]
	}
	return result
}

// CompleteLine completes the last space separated word of line. Text holds the whole
// line with that word replaced when there is exactly one match.
func (x *Index) CompleteLine(line string) Completion {
	head, word := splitLastWord(line)
	result := x.Complete(word)
	result.Text = head + result.Text
	return result
}

// Do implements readline.AutoCompleter. Suggestions are the missing suffixes of the
// word under the cursor.
func (x *Index) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	_, word := splitLastWord(string(line[:pos]))

	result := x.Complete(word)
	wordLen := len([]rune(word))
	for _, match := range result.Matches {
		newLine = append(newLine, []rune(match)[wordLen:])
	}
	return newLine, wordLen
}

func splitLastWord(line string) (head, word string) {
	i := strings.LastIndexByte(line, ' ')
	return line[:i+1], line[i+1:]
}
