package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cmdterm/internal/logger"
	"cmdterm/internal/parser"
)

const startupTemplate = `# each line of this file that doesn't begin with # will be run as a command when the console starts.
`

// RunScript runs every line of r that is neither blank nor a # comment. Command
// failures are logged and do not stop the script; read errors are returned.
func (t *Terminal) RunScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !parser.IsScriptLine(line) {
			continue
		}
		_ = t.execute(line)
		if t.ExitRequested() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// RunScriptFile runs the script at path.
func (t *Terminal) RunScriptFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return t.RunScript(f)
}

// RunStartupScript runs the configured startup script. When the file does not exist a
// commented template is written in its place, except in test mode.
func (t *Terminal) RunStartupScript() error {
	path := t.cfg.StartupScript
	if path == "" {
		return nil
	}

	err := t.RunScriptFile(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return err
	}

	logger.Debug("No startup script found", "path", path)
	if t.cfg.TestMode {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create startup script directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(startupTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write startup script template: %w", err)
	}
	return nil
}
