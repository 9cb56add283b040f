package terminal

import (
	"fmt"
	"strings"

	"cmdterm/internal/logger"
)

// KeyType is the enum type name used when a key argument does not match Keys.
const KeyType = "Key"

// Keys lists the key names accepted by bind and unbind.
var Keys = buildKeys()

func buildKeys() []string {
	keys := []string{
		"Space", "Return", "Escape", "Tab", "Backspace", "Delete", "Insert",
		"Home", "End", "PageUp", "PageDown",
		"UpArrow", "DownArrow", "LeftArrow", "RightArrow",
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, string(c))
	}
	for d := 0; d <= 9; d++ {
		keys = append(keys, fmt.Sprintf("Alpha%d", d))
	}
	for f := 1; f <= 12; f++ {
		keys = append(keys, fmt.Sprintf("F%d", f))
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, "Ctrl"+string(c))
	}
	return keys
}

// CanonicalKey returns the Keys spelling of key, matched case-insensitively.
func CanonicalKey(key string) (string, bool) {
	for _, k := range Keys {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// AddBinding appends command to the commands run when key is pressed.
func (t *Terminal) AddBinding(key, command string) error {
	canonical, ok := CanonicalKey(key)
	if !ok {
		return fmt.Errorf("unknown key %s", key)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[canonical] = append(t.bindings[canonical], command)
	logger.Debug("Key bound", "key", canonical, "command", command)
	return nil
}

// ResetBinding removes every command bound to key.
func (t *Terminal) ResetBinding(key string) {
	canonical, ok := CanonicalKey(key)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.bindings, canonical)
}

// Bindings returns the commands bound to key.
func (t *Terminal) Bindings(key string) []string {
	canonical, ok := CanonicalKey(key)
	if !ok {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.bindings[canonical]...)
}

// IsBound reports whether any command is bound to key.
func (t *Terminal) IsBound(key string) bool {
	return len(t.Bindings(key)) > 0
}

// KeyDown runs the commands bound to key in binding order and reports how many ran.
// The bound lines are not added to the history.
func (t *Terminal) KeyDown(key string) int {
	commands := t.Bindings(key)
	for _, command := range commands {
		_ = t.execute(command)
	}
	return len(commands)
}
