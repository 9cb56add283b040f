package builtin

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdterm/internal/commands"
	"cmdterm/internal/config"
	"cmdterm/internal/console"
	"cmdterm/internal/scheduler"
	"cmdterm/internal/terminal"
	"cmdterm/pkg/consoletypes"
)

func newTestTerminal(t *testing.T) *terminal.Terminal {
	t.Helper()
	cfg := config.Default()
	cfg.TestMode = true
	cfg.StartupScript = ""
	term := terminal.New(cfg)
	_, err := Install(term)
	require.NoError(t, err)
	return term
}

func messages(term *terminal.Terminal) []string {
	var out []string
	for _, e := range term.Buffer().Entries() {
		out = append(out, e.Message)
	}
	return out
}

func lastMessage(t *testing.T, term *terminal.Terminal) string {
	t.Helper()
	entry, ok := term.Buffer().Last()
	require.True(t, ok)
	return entry.Message
}

func args(raw ...string) []console.Arg {
	out := make([]console.Arg, len(raw))
	for i, r := range raw {
		out[i] = console.NewArg(r, nil)
	}
	return out
}

func TestInstall(t *testing.T) {
	term := newTestTerminal(t)

	assert.Empty(t, term.Buffer().Entries(), "registration should not log anything")

	symbols := term.Completer().Symbols()
	for _, name := range []string{"HELP", "CLEAR", "SET", "TIME", "SCHEDULE", "SCHEDULEUNSCALED", "PRINT",
		"TRACE", "BIND", "UNBIND", "COPY", "HISTORY", "VERSION", "NOOP", "EXIT",
		"TIMESCALE", "HANDLEHOSTLOG", "PROMPT", "THEME", "COMPLETIONPADDING"} {
		assert.Contains(t, symbols, name)
	}
	assert.NotContains(t, symbols, "QUIT", "hidden commands are not completed")

	_, ok := term.Shell().Registry().Command("quit")
	assert.True(t, ok)
}

func TestRegister_DuplicateCommands(t *testing.T) {
	term := newTestTerminal(t)
	reg := commands.NewRegistry()

	require.NoError(t, Register(reg, term))
	err := Register(reg, term)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register help command")
}

func TestHelpCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"command without usage", "help print", "Output message"},
		{"command with usage", "help SET", "List all variables or set a variable value\nUsage: set [variable] [value]"},
		{"case insensitive", "help Noop", "No operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newTestTerminal(t)
			require.NoError(t, term.EnterCommand(tt.line))
			assert.Equal(t, tt.expected, lastMessage(t, term))
		})
	}
}

func TestHelpCommand_Listing(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("help"))

	msgs := messages(term)
	assert.Contains(t, msgs, "PRINT           : Output message")
	assert.Contains(t, msgs, "HELP            : Display help information about a command")
	for _, m := range msgs {
		assert.NotContains(t, m, "QUIT")
	}
}

func TestHelpCommand_NoHelpText(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.Register([]console.CommandDescriptor{
		{Name: "mute", Handler: func([]console.Arg) error { return nil }},
	}, nil))

	require.NoError(t, term.EnterCommand("help mute"))
	assert.Equal(t, "MUTE does not provide any help documentation.", lastMessage(t, term))
}

func TestHelpCommand_UnknownCommand(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("help warp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, console.ErrLookup))
	assert.Equal(t, "Error: Command WARP could not be found.", lastMessage(t, term))
}

func TestClearCommand(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("print one"))
	require.NoError(t, term.EnterCommand("clear"))

	assert.Zero(t, term.Buffer().Len())

	err := term.EnterCommand("clear now")
	require.Error(t, err)
	assert.Equal(t, "Error: CLEAR requires exactly 0 arguments", lastMessage(t, term))
}

func TestSetCommand(t *testing.T) {
	term := newTestTerminal(t)

	require.NoError(t, term.EnterCommand("set TimeScale 2.5"))
	assert.Equal(t, 2.5, term.TimeScale())

	require.NoError(t, term.EnterCommand("set prompt $ ready"))
	assert.Equal(t, "$ ready", term.Prompt())

	require.NoError(t, term.EnterCommand("set theme DARK"))
	assert.Equal(t, "dark", term.ThemeName())

	require.NoError(t, term.EnterCommand("set HandleHostLog off"))
	assert.False(t, term.HandlesHostLog())

	require.NoError(t, term.EnterCommand("set CompletionPadding 2"))
	assert.Equal(t, 2, term.CompletionPadding())
}

func TestSetCommand_Listing(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("set"))

	msgs := messages(term)
	assert.Contains(t, msgs, "TIMESCALE       : 1")
	assert.Contains(t, msgs, "HANDLEHOSTLOG   : true")
	assert.Contains(t, msgs, "THEME           : default")
	assert.Contains(t, msgs, "COMPLETIONPADDING: 4")
}

func TestSetCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind error
		msg  string
	}{
		{"unknown variable", "set gravity 9.8", console.ErrLookup, "Error: no variable registered with name GRAVITY"},
		{"bad float", "set TimeScale fast", console.ErrTypeConversion, "Error: Incorrect type for fast, expected <float>"},
		{"unknown theme", "set Theme neon", console.ErrEnumLookup, "Error: value neon not found in enumerated type THEME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newTestTerminal(t)
			err := term.EnterCommand(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Equal(t, tt.msg+"\n    -> Usage: set [variable] [value]", lastMessage(t, term))
		})
	}

	term := newTestTerminal(t)
	_ = term.EnterCommand("set TimeScale fast")
	assert.Equal(t, 1.0, term.TimeScale(), "a failed conversion leaves the value alone")
}

func TestTimeCommand(t *testing.T) {
	term := newTestTerminal(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(1500 * time.Microsecond)}
	cmd := &TimeCommand{term: term, now: func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}}

	require.NoError(t, cmd.Execute(args("print", "timed")))
	msgs := messages(term)
	assert.Equal(t, []string{"print timed", "timed", "Time: 1.5000ms"}, msgs)
}

func TestTimeCommand_ThroughShell(t *testing.T) {
	term := newTestTerminal(t)

	require.NoError(t, term.EnterCommand("time print hello"))
	assert.Contains(t, messages(term), "hello")
	assert.Regexp(t, `^Time: \d+\.\d{4}ms$`, lastMessage(t, term))

	err := term.EnterCommand("time")
	require.Error(t, err)
	assert.True(t, errors.Is(err, console.ErrArity))
}

func TestTimeCommand_KeepsTimedError(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("time warp")
	require.Error(t, err)
	assert.Equal(t, "Error: Command WARP could not be found", lastMessage(t, term))
}

func TestScheduleCommand(t *testing.T) {
	term := newTestTerminal(t)

	require.NoError(t, term.EnterCommand("schedule 1 print later"))
	assert.Equal(t, 1, term.Scheduler().Pending())

	assert.Equal(t, 0, term.Tick(500*time.Millisecond))
	assert.Equal(t, 1, term.Tick(600*time.Millisecond))
	assert.Equal(t, "later", lastMessage(t, term))
	assert.Equal(t, 0, term.Scheduler().Pending())
}

func TestScheduleCommand_TimeScale(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("set TimeScale 4"))

	require.NoError(t, term.EnterCommand("schedule 1 print scaled"))
	require.NoError(t, term.EnterCommand("scheduleunscaled 1 print real"))

	assert.Equal(t, 1, term.Tick(300*time.Millisecond))
	assert.Equal(t, "scaled", lastMessage(t, term))

	assert.Equal(t, 1, term.Tick(700*time.Millisecond))
	assert.Equal(t, "real", lastMessage(t, term))
}

func TestScheduleCommand_Errors(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("schedule soon print x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, console.ErrTypeConversion))
	assert.Equal(t, "Error: Incorrect type for soon, expected <float>\n    -> Usage: schedule [delay] [command] - delay is in seconds",
		lastMessage(t, term))

	err = term.EnterCommand("schedule 1")
	require.Error(t, err)
	assert.Equal(t, "Error: SCHEDULE requires at least 2 arguments\n    -> Usage: schedule [delay] [command] - delay is in seconds",
		lastMessage(t, term))

	assert.Zero(t, term.Scheduler().Pending())
}

func TestScheduleCommand_UnreachableDelays(t *testing.T) {
	for _, delay := range []string{"1e10", "inf", "+Inf", "1e300"} {
		t.Run(delay, func(t *testing.T) {
			term := newTestTerminal(t)
			require.NoError(t, term.EnterCommand("schedule "+delay+" print never"))
			require.NoError(t, term.EnterCommand("scheduleunscaled "+delay+" print never"))

			assert.Equal(t, 0, term.Tick(16*time.Millisecond))
			assert.Equal(t, 0, term.Tick(time.Hour))
			assert.Equal(t, 2, term.Scheduler().Pending())
		})
	}
}

func TestScheduleCommand_NaNDelay(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("schedule nan print x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, console.ErrTypeConversion))
	assert.Equal(t, "Error: Incorrect type for nan, expected <float>\n    -> Usage: schedule [delay] [command] - delay is in seconds",
		lastMessage(t, term))
	assert.Zero(t, term.Scheduler().Pending())

	require.NoError(t, term.EnterCommand("schedule -inf print now"))
	assert.Equal(t, 1, term.Tick(0))
	assert.Equal(t, "now", lastMessage(t, term))
}

func TestTimeScaleVariable_RejectsNonFinite(t *testing.T) {
	for _, value := range []string{"nan", "inf", "-inf"} {
		t.Run(value, func(t *testing.T) {
			term := newTestTerminal(t)
			require.NoError(t, term.EnterCommand("set TimeScale 2"))

			err := term.EnterCommand("set TimeScale " + value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, console.ErrTypeConversion))
			assert.Equal(t, 2.0, term.TimeScale())

			require.NoError(t, term.EnterCommand("schedule 1 print scaled"))
			assert.Equal(t, 1, term.Tick(500*time.Millisecond))
			assert.Equal(t, time.Second, term.Scheduler().Now(scheduler.Scaled))
		})
	}
}

func TestPrintCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"print hello world", "hello world"},
		{`print "quoted  text" tail`, "quoted  text tail"},
		{"print", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			term := newTestTerminal(t)
			require.NoError(t, term.EnterCommand(tt.line))

			entry, ok := term.Buffer().Last()
			require.True(t, ok)
			assert.Equal(t, tt.expected, entry.Message)
			assert.Equal(t, consoletypes.LogMessage, entry.Kind)
		})
	}
}

func TestTraceCommand(t *testing.T) {
	t.Run("nothing logged", func(t *testing.T) {
		term := newTestTerminal(t)
		require.NoError(t, term.EnterCommand("trace"))
		assert.Equal(t, "Nothing to trace.", lastMessage(t, term))
	})

	t.Run("message without trace", func(t *testing.T) {
		term := newTestTerminal(t)
		require.NoError(t, term.EnterCommand("print hi"))
		require.NoError(t, term.EnterCommand("trace"))
		assert.Equal(t, "hi (no trace)", lastMessage(t, term))
	})

	t.Run("panic stack", func(t *testing.T) {
		term := newTestTerminal(t)
		require.NoError(t, term.Register([]console.CommandDescriptor{
			{Name: "crash", Handler: func([]console.Arg) error { panic("kaboom") }},
		}, nil))

		require.Error(t, term.EnterCommand("crash"))
		require.NoError(t, term.EnterCommand("trace"))
		assert.Contains(t, lastMessage(t, term), "goroutine")
	})
}

func TestBindCommand(t *testing.T) {
	term := newTestTerminal(t)

	require.NoError(t, term.EnterCommand("bind f1 print pressed"))
	require.NoError(t, term.EnterCommand("bind F1 print again"))
	assert.True(t, term.IsBound("F1"))

	assert.Equal(t, 2, term.KeyDown("F1"))
	msgs := messages(term)
	assert.Equal(t, []string{"pressed", "again"}, []string{msgs[len(msgs)-3], msgs[len(msgs)-1]})

	require.NoError(t, term.EnterCommand("unbind f1"))
	assert.False(t, term.IsBound("F1"))
	assert.Zero(t, term.KeyDown("F1"))
}

func TestBindCommand_Errors(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("bind hyper print x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, console.ErrEnumLookup))

	err = term.EnterCommand("bind a")
	require.Error(t, err)
	assert.Contains(t, lastMessage(t, term), "BIND requires at least 2 arguments")

	err = term.EnterCommand("unbind")
	require.Error(t, err)
	assert.Contains(t, lastMessage(t, term), "UNBIND requires exactly 1 argument")
}

func TestCopyCommand_NothingToCopy(t *testing.T) {
	term := newTestTerminal(t)

	err := term.EnterCommand("copy")
	require.Error(t, err)
	assert.Equal(t, "Error: nothing to copy", lastMessage(t, term))
}

func TestHistoryCommand(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("print a"))
	require.NoError(t, term.EnterCommand("history"))

	msgs := messages(term)
	assert.Equal(t, []string{"   1  print a", "   2  history"}, msgs[len(msgs)-2:])
}

func TestVersionCommand(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("version"))
	assert.Contains(t, lastMessage(t, term), "cmdterm v")
}

func TestNoopCommand(t *testing.T) {
	term := newTestTerminal(t)
	require.NoError(t, term.EnterCommand("noop"))
	require.NoError(t, term.EnterCommand(`noop with "many args" [and more]`))
}

func TestExitCommand(t *testing.T) {
	for _, line := range []string{"exit", "quit", "QUIT now please"} {
		t.Run(line, func(t *testing.T) {
			term := newTestTerminal(t)
			assert.False(t, term.ExitRequested())
			require.NoError(t, term.EnterCommand(line))
			assert.True(t, term.ExitRequested())
		})
	}

	term := newTestTerminal(t)
	require.Error(t, term.EnterCommand("exit now"))
	assert.False(t, term.ExitRequested())
}

func TestCommandMetadata(t *testing.T) {
	term := newTestTerminal(t)
	for _, cmd := range Commands(term) {
		t.Run(cmd.Name(), func(t *testing.T) {
			d := cmd.Descriptor()
			assert.Equal(t, cmd.Name(), d.Name)
			assert.Equal(t, cmd.Description(), d.Help)
			assert.NotNil(t, d.Handler)
			assert.Equal(t, cmd.Usage(), d.Usage)
		})
	}
}
