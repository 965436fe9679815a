package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crackleaf/internal/config"
	"crackleaf/internal/log"
	"crackleaf/internal/qpdf"
	"crackleaf/internal/unlock"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set by main.go
var Version = "dev"

// Tool is the subset of *qpdf.Tool the commands need.
type Tool interface {
	unlock.Decrypter
	Probe(ctx context.Context) qpdf.ToolStatus
	Encryption(ctx context.Context, path string) qpdf.Encryption
}

// discoverTool resolves the qpdf binary. Tests replace it with a fake.
var discoverTool = func(override string) Tool {
	return qpdf.Discover(override)
}

// currentConfig is loaded before every subcommand runs.
var currentConfig *config.Config

var (
	logLevel  string
	logCloser io.Closer
)

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "crackleaf",
	Short: "Remove owner restrictions from PDF files",
	Long: `CrackLeaf removes owner-password restrictions (printing, copying, editing)
from PDF files by running qpdf --decrypt on each one. Unlocked copies are
written as <name>_unlocked.pdf to the Downloads folder unless -o is given.

Run without arguments to open the window.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// loadSettings reads the configuration and installs the logger. An invalid
// configuration stops the command.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	closer, err := log.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logCloser = closer
	currentConfig = cfg
	return nil
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root's pre-run hook.
func settings() *config.Config {
	if currentConfig == nil {
		return config.Default()
	}
	return currentConfig
}

// commandContext returns the command's context, or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isCommand reports whether arg selects CLI mode.
func isCommand(arg string) bool {
	switch arg {
	case "unlock", "probe", "watch", "help", "--help", "-h", "version", "--version", "-v":
		return true
	}
	return false
}

// isCLI reports whether args (without the program name) select CLI mode.
// Leading persistent flags such as --log-level are skipped.
func isCLI(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if isCommand(arg) {
			return true
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			return false
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		var f *pflag.Flag
		if strings.HasPrefix(arg, "--") {
			f = rootCmd.PersistentFlags().Lookup(name)
		} else if len(name) == 1 {
			f = rootCmd.PersistentFlags().ShorthandLookup(name)
		}
		if f == nil {
			return false
		}
		if !hasValue && f.NoOptDefVal == "" {
			i++
		}
	}
	return false
}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	// Check if we're in CLI mode (have subcommands)
	if !isCLI(os.Args[1:]) {
		return false
	}

	// Ctrl+C stops after the file being unlocked
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
	return true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "crackleaf %s\n", Version)
	},
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}
