// Package theme loads the console colour themes from embedded YAML and exposes them as
// lipgloss styles. A Theme is an output.StyleProvider.
package theme

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"cmdterm/internal/data/embedded"
	"cmdterm/internal/logger"
	"cmdterm/internal/output"
	"cmdterm/pkg/consoletypes"
)

// Plain is the name of the theme without any styling. It is always available.
const Plain = "plain"

// Theme holds the styles for each log kind and for prompt highlighting.
type Theme struct {
	Name        string
	Description string
	Message     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Shell       lipgloss.Style
	Input       lipgloss.Style
	Command     lipgloss.Style
	Highlight   lipgloss.Style
}

var _ output.StyleProvider = (*Theme)(nil)

// GetStyle implements output.StyleProvider.
func (t *Theme) GetStyle(semantic string) output.TextStyle {
	switch output.SemanticType(semantic) {
	case output.SemanticMessage:
		return t.Message
	case output.SemanticWarning:
		return t.Warning
	case output.SemanticError:
		return t.Error
	case output.SemanticShell:
		return t.Shell
	case output.SemanticInput:
		return t.Input
	case output.SemanticCommand:
		return t.Command
	case output.SemanticHighlight:
		return t.Highlight
	default:
		return lipgloss.NewStyle()
	}
}

// IsAvailable implements output.StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t != nil
}

// Service keeps the loaded themes.
type Service struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewService creates a Service with the embedded themes loaded.
func NewService() *Service {
	s := &Service{themes: make(map[string]*Theme)}
	for name, data := range embedded.Themes() {
		if err := s.Add(name, data); err != nil {
			logger.Error("Failed to load theme", "theme", name, "error", err)
			s.themes[name] = fallbackTheme(name)
		}
	}
	if _, ok := s.themes[Plain]; !ok {
		s.themes[Plain] = fallbackTheme(Plain)
	}
	return s
}

// Add parses a YAML theme file and registers it under name.
func (s *Service) Add(name string, data []byte) error {
	var file consoletypes.ThemeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse theme file: %w", err)
	}

	th := convertThemeConfig(&file.ThemeConfig)
	th.Name = strings.ToLower(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[th.Name] = th
	return nil
}

// Names returns the available theme names in alphabetical order.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.themes))
	for name := range s.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named theme, matched case-insensitively.
func (s *Service) Get(name string) (*Theme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	th, ok := s.themes[strings.ToLower(strings.TrimSpace(name))]
	return th, ok
}

// ByName returns the named theme, or the plain theme when it does not exist.
func (s *Service) ByName(name string) *Theme {
	if th, ok := s.Get(name); ok {
		return th
	}
	logger.Debug("Unknown theme requested, using plain theme", "theme", name, "available", s.Names())
	th, _ := s.Get(Plain)
	return th
}

func convertThemeConfig(config *consoletypes.ThemeConfig) *Theme {
	return &Theme{
		Name:        config.Name,
		Description: config.Description,
		Message:     createStyle(config.Styles.Message),
		Warning:     createStyle(config.Styles.Warning),
		Error:       createStyle(config.Styles.Error),
		Shell:       createStyle(config.Styles.Shell),
		Input:       createStyle(config.Styles.Input),
		Command:     createStyle(config.Styles.Command),
		Highlight:   createStyle(config.Styles.Highlight),
	}
}

// createStyle converts a StyleConfig to a lipgloss.Style.
func createStyle(config consoletypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if config.Foreground != nil {
		if color := parseColor(config.Foreground); color != nil {
			style = style.Foreground(color)
		}
	}
	if config.Background != nil {
		if color := parseColor(config.Background); color != nil {
			style = style.Background(color)
		}
	}

	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}

	return style
}

// parseColor parses a color value that can be a string or a light/dark map.
func parseColor(colorValue interface{}) lipgloss.TerminalColor {
	switch v := colorValue.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}

func fallbackTheme(name string) *Theme {
	return &Theme{
		Name:      name,
		Message:   lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Shell:     lipgloss.NewStyle(),
		Input:     lipgloss.NewStyle(),
		Command:   lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
	}
}
