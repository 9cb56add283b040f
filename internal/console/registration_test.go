package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdterm/pkg/consoletypes"
)

func noop(_ []Arg) error { return nil }

func TestInferCommandName(t *testing.T) {
	tests := []struct {
		identifier string
		expected   string
	}{
		{identifier: "CommandClear", expected: "Clear"},
		{identifier: "HelpCommand", expected: "Help"},
		{identifier: "doCOMMANDthing", expected: "dothing"},
		{identifier: "commandcommand", expected: "command"},
		{identifier: "Print", expected: "Print"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCommandName(tt.identifier))
		})
	}

	assert.Equal(t, "Bind", inferFrontCommandName("FrontCommandBind"))
}

func TestShell_Register_Commands(t *testing.T) {
	sh, _ := newTestShell()

	err := sh.Register([]CommandDescriptor{
		{Identifier: "CommandClear", MaxArgs: 0, Help: "Clear the console", Handler: noop},
		{Name: "Help", MaxArgs: 1, Handler: noop},
		{Name: "secret", MaxArgs: -1, Hidden: true, Handler: noop},
	}, nil)
	require.NoError(t, err)

	_, failed := sh.Error()
	assert.False(t, failed)

	names := []string{}
	for _, spec := range sh.Registry().Commands() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"CLEAR", "HELP", "SECRET"}, names)

	spec, ok := sh.Registry().Command("clear")
	require.True(t, ok)
	assert.Equal(t, "Clear the console", spec.Help)

	hidden, ok := sh.Registry().Command("Secret")
	require.True(t, ok)
	assert.True(t, hidden.Hidden)
}

func TestShell_Register_DuplicateCommandIsNonFatal(t *testing.T) {
	sh, _ := newTestShell()
	first := 0

	err := sh.Register([]CommandDescriptor{
		{Name: "print", MaxArgs: -1, Handler: func(_ []Arg) error { first++; return nil }},
		{Name: "PRINT", MaxArgs: -1, Handler: noop},
		{Name: "noop", MaxArgs: -1, Handler: noop},
	}, nil)
	require.NoError(t, err)

	msg, failed := sh.Error()
	require.True(t, failed)
	assert.Equal(t, "Command PRINT is already defined.", msg)
	assert.ErrorIs(t, sh.Err(), ErrRegistration)

	_, ok := sh.Registry().Command("noop")
	assert.True(t, ok, "registration continues after a duplicate")

	sh.Run("print x")
	assert.Equal(t, 1, first, "the first registration wins")
}

func TestShell_Register_InvalidBoundsAreRejected(t *testing.T) {
	sh, _ := newTestShell()

	require.NoError(t, sh.Register([]CommandDescriptor{
		{Name: "bad", MinArgs: 3, MaxArgs: 1, Handler: noop},
	}, nil))

	_, ok := sh.Registry().Command("bad")
	assert.False(t, ok)
	msg, failed := sh.Error()
	require.True(t, failed)
	assert.Contains(t, msg, "invalid argument bounds")
}

func TestShell_Register_FrontCommandBackfill(t *testing.T) {
	sh, _ := newTestShell()
	called := false

	err := sh.Register([]CommandDescriptor{
		{Identifier: "FrontCommandBind", Front: true, MinArgs: 2, MaxArgs: 2, Help: "Bind a key"},
		{Name: "bind", MaxArgs: -1, Usage: "bind [key] [command]", Handler: func(_ []Arg) error {
			called = true
			return nil
		}},
	}, nil)
	require.NoError(t, err)
	_, failed := sh.Error()
	require.False(t, failed)

	spec, ok := sh.Registry().Command("BIND")
	require.True(t, ok)
	assert.Equal(t, 2, spec.MinArgs)
	assert.Equal(t, 2, spec.MaxArgs)
	assert.Equal(t, "Bind a key", spec.Help)
	assert.Equal(t, "bind [key] [command]", spec.Usage)

	sh.Run("bind a")
	assert.False(t, called)
	msg, _ := sh.Error()
	assert.Equal(t, "BIND requires exactly 2 arguments\n    -> Usage: bind [key] [command]", msg)

	sh.Run("bind a b")
	assert.True(t, called)
}

func TestShell_Register_UnmatchedFrontCommand(t *testing.T) {
	sh, _ := newTestShell()

	err := sh.Register([]CommandDescriptor{
		{Identifier: "FrontCommandWarp", Front: true, MinArgs: 1, MaxArgs: 1},
	}, nil)
	require.NoError(t, err)

	msg, failed := sh.Error()
	require.True(t, failed)
	assert.Equal(t, "WARP is missing a front command.", msg)

	_, ok := sh.Registry().Command("warp")
	assert.False(t, ok)

	sh.ClearError()
	sh.Run("warp 1")
	msg, failed = sh.Error()
	require.True(t, failed)
	assert.Equal(t, "Command WARP could not be found", msg)
	assert.ErrorIs(t, sh.Err(), ErrLookup)
}

func TestShell_Register_KeepsEveryWarning(t *testing.T) {
	sh, _ := newTestShell()

	require.NoError(t, sh.Register([]CommandDescriptor{
		{Name: "alpha", Handler: noop},
		{Name: "ALPHA", Handler: noop},
		{Name: "beta", Handler: noop},
		{Name: "Beta", Handler: noop},
		{Identifier: "FrontCommandWarp", Front: true},
	}, nil))

	var got []string
	for _, w := range sh.RegistrationWarnings() {
		assert.ErrorIs(t, w, ErrRegistration)
		got = append(got, w.Error())
	}
	assert.Equal(t, []string{
		"Command ALPHA is already defined.",
		"Command BETA is already defined.",
		"WARP is missing a front command.",
	}, got)

	msg, _ := sh.Error()
	assert.Equal(t, "WARP is missing a front command.", msg, "the error state holds the last warning")

	require.NoError(t, sh.Register([]CommandDescriptor{{Name: "gamma", Handler: noop}}, nil))
	assert.Empty(t, sh.RegistrationWarnings(), "each Register call starts a fresh list")
}

func TestShell_Register_Variables(t *testing.T) {
	sh, _ := newTestShell()
	scale := 1.0
	flag := true

	err := sh.Register(nil, []VariableDescriptor{
		{Name: "TimeScale", Kind: consoletypes.KindFloat, Get: func() interface{} { return scale }, Set: func(v interface{}) { scale = v.(float64) }},
		{Identifier: "Verbose", Kind: consoletypes.KindBool, Get: func() interface{} { return flag }, Set: func(v interface{}) { flag = v.(bool) }},
		{Name: "timescale", Kind: consoletypes.KindFloat, Get: func() interface{} { return 0.0 }, Set: func(interface{}) {}},
		{Name: "Broken", Kind: consoletypes.KindInvalid, Get: func() interface{} { return nil }, Set: func(interface{}) {}},
		{Name: "Mode", Kind: consoletypes.KindEnum, Get: func() interface{} { return "" }, Set: func(interface{}) {}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistration)
	assert.Contains(t, err.Error(), "there is already a variable called TIMESCALE")
	assert.Contains(t, err.Error(), "can't register variable BROKEN")
	assert.Contains(t, err.Error(), "enum variable MODE has no symbols")

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.True(t, regErr.Fatal)

	names := []string{}
	for _, spec := range sh.Registry().Variables() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"TIMESCALE", "VERBOSE"}, names)
}
