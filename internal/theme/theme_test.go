package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdterm/internal/output"
)

func TestService_EmbeddedThemes(t *testing.T) {
	s := NewService()
	assert.Equal(t, []string{"dark", "default", "light", "plain"}, s.Names())

	th, ok := s.Get(" DARK ")
	require.True(t, ok)
	assert.Equal(t, "dark", th.Name)
	assert.NotEmpty(t, th.Description)
}

func TestService_ByNameFallsBackToPlain(t *testing.T) {
	s := NewService()
	assert.Equal(t, Plain, s.ByName("neon").Name)
	assert.Equal(t, "light", s.ByName("Light").Name)
}

func TestService_Add(t *testing.T) {
	s := NewService()
	data := []byte(`
name: solar
styles:
  error:
    foreground: "#FF0000"
    bold: true
  warning:
    foreground:
      light: "#000000"
      dark: "#FFFFFF"
`)
	require.NoError(t, s.Add("Solar", data))

	th, ok := s.Get("solar")
	require.True(t, ok)
	assert.Equal(t, lipgloss.Color("#FF0000"), th.Error.GetForeground())
	assert.True(t, th.Error.GetBold())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}, th.Warning.GetForeground())

	assert.Error(t, s.Add("broken", []byte("styles: [")))
}

func TestTheme_GetStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	th := NewService().ByName("dark")
	assert.True(t, th.IsAvailable())

	styled := th.GetStyle(string(output.SemanticError)).Render("boom")
	assert.Contains(t, styled, "boom")
	assert.NotEqual(t, "boom", styled)

	assert.Equal(t, "boom", th.GetStyle("unknown").Render("boom"))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#123456"), parseColor("#123456"))
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "1", Dark: "2"}, parseColor(map[string]interface{}{"light": "1", "dark": "2"}))
	assert.Nil(t, parseColor(map[string]interface{}{"light": "1"}))
	assert.Nil(t, parseColor(42))
}
