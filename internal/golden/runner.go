// Package golden runs console scripts against a fresh terminal and compares the
// rendered transcript with a recorded .expected file.
package golden

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"cmdterm/internal/commands/builtin"
	"cmdterm/internal/config"
	"cmdterm/internal/logger"
	"cmdterm/internal/output"
	"cmdterm/internal/terminal"
)

const (
	// ScriptExt is the extension of golden test scripts.
	ScriptExt = ".cmd"
	// ExpectedExt is the extension of recorded transcripts.
	ExpectedExt = ".expected"
)

// Runner runs golden scripts found in Dir.
type Runner struct {
	Dir string
	// Settle is the real time advanced in tick-sized steps after the script, so scheduled
	// commands can fire before the transcript is taken. Zero skips settling.
	Settle time.Duration
	// Setup runs on every fresh terminal after the built-ins are installed.
	Setup func(*terminal.Terminal) error

	normalizer *Normalizer
	log        *log.Logger
}

// NewRunner creates a runner for the scripts in dir.
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:        dir,
		Settle:     time.Minute,
		normalizer: NewNormalizer(),
		log:        logger.NewStyledLogger("golden"),
	}
}

// Transcript runs script on a new terminal and returns its normalized plain-text log.
func (r *Runner) Transcript(script io.Reader) (string, error) {
	cfg := config.Default()
	cfg.TestMode = true
	cfg.StartupScript = ""

	term := terminal.New(cfg)
	if _, err := builtin.Install(term); err != nil {
		return "", fmt.Errorf("failed to install built-in commands: %w", err)
	}
	if r.Setup != nil {
		if err := r.Setup(term); err != nil {
			return "", fmt.Errorf("setup failed: %w", err)
		}
	}

	if err := term.RunScript(script); err != nil {
		return "", err
	}
	term.Settle(r.Settle)

	var buf bytes.Buffer
	printer := output.NewPrinter(output.WithWriter(&buf), output.PlainText(), output.TestMode())
	printer.Entries(term.Buffer().Entries())

	return r.normalizer.Normalize(clean(ansi.Strip(buf.String()))), nil
}

// Run runs the named script and returns its transcript.
func (r *Runner) Run(name string) (string, error) {
	path := filepath.Join(r.Dir, name+ScriptExt)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("test script not found: %w", err)
	}
	defer func() { _ = f.Close() }()

	r.log.Debug("Running golden script", "name", name, "path", path)
	return r.Transcript(f)
}

// Check runs the named script and compares it with the recorded transcript. A mismatch
// is returned as a *MismatchError carrying both transcripts.
func (r *Runner) Check(name string) error {
	actual, err := r.Run(name)
	if err != nil {
		return err
	}

	expectedPath := filepath.Join(r.Dir, name+ExpectedExt)
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("failed to read expected file %s: %w", expectedPath, err)
	}
	expected := clean(string(content))

	if !r.normalizer.Equal(expected, actual) {
		return &MismatchError{Name: name, Expected: expected, Actual: actual}
	}
	return nil
}

// Record runs the named script and writes its transcript as the expected output.
func (r *Runner) Record(name string) error {
	actual, err := r.Run(name)
	if err != nil {
		return err
	}

	expectedPath := filepath.Join(r.Dir, name+ExpectedExt)
	if err := os.WriteFile(expectedPath, []byte(actual+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write expected file: %w", err)
	}
	r.log.Info("Recorded golden transcript", "name", name)
	return nil
}

// Scripts lists the script names in Dir, sorted.
func (r *Runner) Scripts() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.Dir, "*"+ScriptExt))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(match), ScriptExt))
	}
	sort.Strings(names)
	return names, nil
}

// CheckAll checks every script and returns the names of the failing ones.
func (r *Runner) CheckAll() (passed []string, failed map[string]error, err error) {
	names, err := r.Scripts()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find scripts: %w", err)
	}

	failed = make(map[string]error)
	for _, name := range names {
		if err := r.Check(name); err != nil {
			failed[name] = err
			continue
		}
		passed = append(passed, name)
	}
	return passed, failed, nil
}
