package consoletypes

// ThemeConfig represents a console theme loaded from YAML.
// It defines the colours used for each log kind and for prompt highlighting.
type ThemeConfig struct {
	// Name is the theme identifier (e.g., "default", "dark", "light", "plain")
	Name string `yaml:"name" json:"name"`

	// Description provides a brief description of the theme
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Styles contains the style definitions for the different log kinds
	Styles ThemeStyles `yaml:"styles" json:"styles"`
}

// ThemeStyles maps log kinds and prompt elements to styles.
type ThemeStyles struct {
	Message StyleConfig `yaml:"message" json:"message"`
	Warning StyleConfig `yaml:"warning" json:"warning"`
	Error   StyleConfig `yaml:"error" json:"error"`
	Shell   StyleConfig `yaml:"shell" json:"shell"`
	Input   StyleConfig `yaml:"input" json:"input"`

	// Command highlights a known command name while typing
	Command StyleConfig `yaml:"command" json:"command"`

	// Highlight is used for completion listings
	Highlight StyleConfig `yaml:"highlight" json:"highlight"`
}

// StyleConfig defines the visual styling for a semantic element.
// It supports both simple color specifications and adaptive colors for light/dark terminals.
type StyleConfig struct {
	// Foreground color - can be hex color, named color, or adaptive color object
	Foreground interface{} `yaml:"foreground,omitempty" json:"foreground,omitempty"`

	// Background color - can be hex color, named color, or adaptive color object
	Background interface{} `yaml:"background,omitempty" json:"background,omitempty"`

	Bold      *bool `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic    *bool `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline *bool `yaml:"underline,omitempty" json:"underline,omitempty"`
}

// ThemeFile represents a complete theme file loaded from YAML.
type ThemeFile struct {
	ThemeConfig `yaml:",inline" json:",inline"`
}
