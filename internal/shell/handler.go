// Package shell runs an interactive console session on a terminal. Input is read with
// readline; a host loop owns the terminal, runs submitted lines, fires key bindings and
// ticks the scheduler.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"cmdterm/internal/logger"
	"cmdterm/internal/output"
	"cmdterm/internal/terminal"
	"cmdterm/internal/version"
)

// defaultTickInterval is used when the configured interval is not positive.
const defaultTickInterval = 16 * time.Millisecond

// LineReader is the line editor used by a session. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Refresh()
	Close() error
}

// Session is one interactive run of a terminal.
type Session struct {
	term     *terminal.Terminal
	printer  *output.Printer
	out      io.Writer
	interval time.Duration
	banner   bool
	mode     output.Mode
	mark     uint64
	keys     chan string
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets where log entries are rendered. Defaults to the readline stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithMode sets the output mode of the session printer. Defaults to output.ModeAuto.
func WithMode(mode output.Mode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithoutBanner suppresses the version banner.
func WithoutBanner() Option {
	return func(s *Session) {
		s.banner = false
	}
}

// New creates a session for term.
func New(term *terminal.Terminal, opts ...Option) *Session {
	interval := term.Config().TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}

	s := &Session{
		term:     term,
		interval: interval,
		banner:   true,
		keys:     make(chan string, 16),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run opens a readline editor on the process terminal and serves it until the user
// exits or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              s.term.Prompt(),
		AutoComplete:        s.term.Completer(),
		Painter:             newPainter(s.term),
		FuncFilterInputRune: s.filterRune,
		HistoryLimit:        s.term.Config().HistorySize,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
	})
	if err != nil {
		return err
	}
	if s.out == nil {
		s.out = rl.Stdout()
		// readline wraps stdout, which hides the terminal from colour detection.
		if s.mode == output.ModeAuto && readline.DefaultIsTerminal() {
			s.mode = output.ModeStyled
		}
	}

	// Route our own logging through the console while the session runs.
	logger.SetOutput(s.term.HostLogWriter())
	defer logger.SetOutput(os.Stderr)

	return s.Serve(ctx, rl)
}

// Serve runs the session on rl. It returns nil when the input ends or exit is requested.
func (s *Session) Serve(ctx context.Context, rl LineReader) error {
	if s.out == nil {
		s.out = os.Stdout
	}
	s.printer = output.NewPrinter(
		output.WithWriter(s.out),
		output.WithStyles(s.term.Theme()),
		output.WithMode(s.mode),
	)

	if s.banner {
		s.printer.Highlight(version.GetFormattedVersion() + " - type help for a list of commands")
	}
	s.flush()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(lines)
		return s.read(ctx, rl, lines)
	})
	g.Go(func() error {
		defer cancel()
		defer func() { _ = rl.Close() }()
		return s.loop(ctx, rl, lines)
	})

	return g.Wait()
}

// read feeds submitted lines to the host loop.
func (s *Session) read(ctx context.Context, rl LineReader, lines chan<- string) error {
	for {
		line, err := rl.Readline()
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		select {
		case lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
}

// loop is the only goroutine that touches the terminal while the session runs.
func (s *Session) loop(ctx context.Context, rl LineReader, lines <-chan string) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	last := s.now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			_ = s.term.EnterCommand(line)
			s.flush()
			rl.SetPrompt(s.term.Prompt())

		case key := <-s.keys:
			if s.term.KeyDown(key) > 0 {
				s.flush()
				rl.Refresh()
			}

		case <-ticker.C:
			now := s.now()
			if s.term.Tick(now.Sub(last)) > 0 {
				s.flush()
				rl.Refresh()
			}
			last = now
		}

		if s.term.ExitRequested() {
			logger.Debug("Exit requested")
			return nil
		}
	}
}

// flush renders the entries logged since the previous flush with the current theme.
func (s *Session) flush() {
	buffer := s.term.Buffer()
	entries := buffer.Since(s.mark)
	s.mark = buffer.Total()

	s.printer.SetStyleProvider(s.term.Theme())
	s.printer.Entries(entries)
}

// filterRune swallows control characters bound to commands and queues their key event.
func (s *Session) filterRune(r rune) (rune, bool) {
	key, ok := ctrlKey(r)
	if !ok || !s.term.IsBound(key) {
		return r, true
	}

	select {
	case s.keys <- key:
	default:
		logger.Warn("Key event dropped", "key", key)
	}
	return r, false
}

// ctrlKey maps a control character to its CtrlA..CtrlZ key name.
func ctrlKey(r rune) (string, bool) {
	if r < 1 || r > 26 {
		return "", false
	}
	return "Ctrl" + string(rune('A'+r-1)), true
}
