// Package main provides the cmdterm CLI application entry point.
// cmdterm is an embeddable developer console: typed commands, variables, key bindings
// and scheduled commands behind a readline prompt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cmdterm/internal/commands"
	"cmdterm/internal/commands/builtin"
	"cmdterm/internal/config"
	"cmdterm/internal/golden"
	"cmdterm/internal/logger"
	"cmdterm/internal/output"
	"cmdterm/internal/shell"
	"cmdterm/internal/terminal"
	"cmdterm/internal/theme"
	"cmdterm/internal/version"
)

var (
	v          = viper.New()
	configFile string
	cfg        config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmdterm",
	Short: "cmdterm - embeddable developer console",
	Long: `cmdterm is a developer console with typed commands, variables, key bindings,
history, completion and commands scheduled on a scaled or real clock.`,
	SilenceUsage: true,
	RunE:         runShell, // Default behavior is to run the interactive shell
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive console mode",
	RunE:  runShell,
}

// batchCmd runs a script without entering interactive mode
var batchCmd = &cobra.Command{
	Use:   "batch <script>",
	Short: "Run a console script and print its log",
	Long: `Run every non-comment line of a script file as a console command, then print
the resulting log. Scheduled commands run once the script is done, after --settle.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		settle, _ := cmd.Flags().GetDuration("settle")
		return runBatch(cmd.OutOrStdout(), args[0], jsonOut, settle)
	},
}

// verifyCmd checks golden transcripts
var verifyCmd = &cobra.Command{
	Use:   "verify <dir>",
	Short: "Run golden console scripts and compare their transcripts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update, _ := cmd.Flags().GetBool("update")
		return runVerify(cmd.OutOrStdout(), args[0], update)
	},
}

// commandsCmd renders the command reference
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the built-in command reference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return runCommands(cmd.OutOrStdout(), raw)
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")
		if detailed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			return
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file [default: ./cmdterm.yaml or $XDG_CONFIG_HOME/cmdterm/cmdterm.yaml]")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("theme", "", "Console theme (default|dark|light|plain)")
	flags.String("startup", "", "Startup script run before the prompt appears")

	// Bind flags to viper
	for key, flag := range map[string]string{
		config.KeyLogLevel:      "log-level",
		config.KeyLogFile:       "log-file",
		config.KeyTestMode:      "test-mode",
		config.KeyTheme:         "theme",
		config.KeyStartupScript: "startup",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	batchCmd.Flags().Bool("json", false, "Print the log as JSON lines")
	batchCmd.Flags().Duration("settle", 0, "Real time to advance after the script, in tick-interval steps, so scheduled commands fire")
	verifyCmd.Flags().Bool("update", false, "Record the current transcripts as expected output")
	commandsCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	versionCmd.Flags().Bool("detailed", false, "Show build details")

	rootCmd.AddCommand(shellCmd, batchCmd, verifyCmd, commandsCmd, versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load(config.Options{Viper: v, ConfigFile: configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// newTerminal creates a terminal with the built-in commands and variables installed.
func newTerminal(c config.Config) (*terminal.Terminal, *commands.Registry, error) {
	term := terminal.New(c, terminal.WithThemeHook(func(t *theme.Theme) {
		logger.Debug("Theme changed", "theme", t.Name)
	}))
	reg, err := builtin.Install(term)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to install built-in commands: %w", err)
	}
	return term, reg, nil
}

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("Starting cmdterm", "version", version.GetVersion())

	term, _, err := newTerminal(cfg)
	if err != nil {
		return err
	}
	if err := term.RunStartupScript(); err != nil {
		logger.Error("Startup script failed", "path", cfg.StartupScript, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return shell.New(term).Run(ctx)
}

func runBatch(w io.Writer, scriptPath string, jsonOut bool, settle time.Duration) error {
	logger.Info("Starting cmdterm batch mode", "version", version.GetVersion(), "script", scriptPath)

	c := cfg
	c.StartupScript = ""
	term, _, err := newTerminal(c)
	if err != nil {
		return err
	}
	if err := term.RunScriptFile(scriptPath); err != nil {
		return err
	}
	term.Settle(settle)

	opts := []output.Option{output.WithWriter(w), output.WithStyles(term.Theme())}
	if jsonOut {
		opts = append(opts, output.JSON())
	}
	if cfg.TestMode {
		opts = append(opts, output.TestMode())
	}
	output.NewPrinter(opts...).Entries(term.Buffer().Entries())

	logger.Info("Script executed", "script", scriptPath)
	return nil
}

func runVerify(w io.Writer, dir string, update bool) error {
	runner := golden.NewRunner(dir)
	names, err := runner.Scripts()
	if err != nil {
		return err
	}

	if update {
		for _, name := range names {
			if err := runner.Record(name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "RECORDED %s\n", name)
		}
		return nil
	}

	passed, failed, err := runner.CheckAll()
	if err != nil {
		return err
	}
	for _, name := range names {
		if ferr, ok := failed[name]; ok {
			_, _ = fmt.Fprintf(w, "FAIL %s: %v\n", name, ferr)
		} else {
			_, _ = fmt.Fprintf(w, "PASS %s\n", name)
		}
	}
	_, _ = fmt.Fprintf(w, "\nResults: %d passed, %d failed\n", len(passed), len(failed))

	if len(failed) > 0 {
		return fmt.Errorf("%d golden tests failed", len(failed))
	}
	return nil
}

func runCommands(w io.Writer, raw bool) error {
	c := config.Default()
	c.StartupScript = ""
	_, reg, err := newTerminal(c)
	if err != nil {
		return err
	}

	md := reg.Markdown()
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render command reference: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}
