// Package config loads cmdterm settings.
//
// Values are resolved with the usual viper precedence: command-line flags bound by the
// caller, CMDTERM_* environment variables (including those from .env files), the optional
// cmdterm.yaml file, then the defaults below.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName is used for the config directory, config file and environment prefix.
const AppName = "cmdterm"

// Setting keys.
const (
	KeyBufferSize        = "buffer_size"
	KeyHistorySize       = "history_size"
	KeyPrompt            = "prompt"
	KeyTheme             = "theme"
	KeyStartupScript     = "startup_script"
	KeyHandleHostLog     = "handle_host_log"
	KeyTimeScale         = "time_scale"
	KeyTickInterval      = "tick_interval"
	KeyCompletionPadding = "completion_padding"
	KeyLogLevel          = "log_level"
	KeyLogFile           = "log_file"
	KeyTestMode          = "test_mode"
)

// Config holds the resolved settings of a terminal session.
type Config struct {
	BufferSize        int
	HistorySize       int
	Prompt            string
	Theme             string
	StartupScript     string
	HandleHostLog     bool
	TimeScale         float64
	TickInterval      time.Duration
	CompletionPadding int
	LogLevel          string
	LogFile           string
	TestMode          bool
}

// Dir returns the per-user configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BufferSize:        512,
		HistorySize:       256,
		Prompt:            "> ",
		Theme:             "default",
		StartupScript:     filepath.Join(Dir(), "startup.txt"),
		HandleHostLog:     true,
		TimeScale:         1.0,
		TickInterval:      16 * time.Millisecond,
		CompletionPadding: 4,
		LogLevel:          "",
		LogFile:           "",
		TestMode:          false,
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// Viper is the instance flags were bound to. A fresh instance is used when nil.
	Viper *viper.Viper
	// ConfigFile is an explicit config file. When empty cmdterm.yaml is searched in
	// WorkDir and the user config directory.
	ConfigFile string
	// WorkDir defaults to the process working directory.
	WorkDir string
	// SkipDotEnv disables .env loading.
	SkipDotEnv bool
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	v := opts.Viper
	if v == nil {
		v = viper.New()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}

	if !opts.SkipDotEnv {
		if err := loadDotEnv(workDir, Dir()); err != nil {
			return Config{}, err
		}
	}

	setDefaults(v)
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(workDir)
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		BufferSize:        v.GetInt(KeyBufferSize),
		HistorySize:       v.GetInt(KeyHistorySize),
		Prompt:            v.GetString(KeyPrompt),
		Theme:             v.GetString(KeyTheme),
		StartupScript:     v.GetString(KeyStartupScript),
		HandleHostLog:     v.GetBool(KeyHandleHostLog),
		TimeScale:         v.GetFloat64(KeyTimeScale),
		TickInterval:      v.GetDuration(KeyTickInterval),
		CompletionPadding: v.GetInt(KeyCompletionPadding),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFile:           v.GetString(KeyLogFile),
		TestMode:          v.GetBool(KeyTestMode),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the terminal cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyBufferSize, c.BufferSize))
	}
	if c.HistorySize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyHistorySize, c.HistorySize))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", KeyTickInterval, c.TickInterval))
	}
	if c.CompletionPadding < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", KeyCompletionPadding, c.CompletionPadding))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyBufferSize, d.BufferSize)
	v.SetDefault(KeyHistorySize, d.HistorySize)
	v.SetDefault(KeyPrompt, d.Prompt)
	v.SetDefault(KeyTheme, d.Theme)
	v.SetDefault(KeyStartupScript, d.StartupScript)
	v.SetDefault(KeyHandleHostLog, d.HandleHostLog)
	v.SetDefault(KeyTimeScale, d.TimeScale)
	v.SetDefault(KeyTickInterval, d.TickInterval)
	v.SetDefault(KeyCompletionPadding, d.CompletionPadding)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyTestMode, d.TestMode)
}

// loadDotEnv exports .env entries into the process environment. Variables that are
// already set win, and the working directory file wins over the config directory one.
func loadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err != nil {
			continue // Missing .env file is not an error
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
		}
	}
	return nil
}
