package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/config"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	// Set by the root command before any subcommand runs.
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "rxbuilder",
	Short: "rxbuilder - build regular expressions from example text",
	Long: `rxbuilder finds recognizable tokens in a sample line of text (IP addresses,
dates, UUIDs, log levels, numbers, words) and composes a regular expression
from the interpretations you choose, escaping everything in between.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/rxbuilder/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(recognizersCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds a console logger on stderr. --verbose and --quiet take
// precedence over the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch {
	case verbose:
		lvl = zapcore.DebugLevel
	case quiet:
		lvl = zapcore.ErrorLevel
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

// =============================================================================
// HELPERS
// =============================================================================

// recognizerFlags are the catalog selection flags shared by several commands.
type recognizerFlags struct {
	path    string
	include string
	exclude string
}

func (f *recognizerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "recognizers", "", "Path to custom recognizers file")
	cmd.Flags().StringVar(&f.include, "include", "", "Include recognizers matching regex pattern (comma-separated)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "Exclude recognizers matching regex pattern (comma-separated)")
}

// loadCatalog applies the flags on top of the config file settings.
func (f *recognizerFlags) loadCatalog() (*catalog.Catalog, error) {
	c := *cfg
	if f.path != "" {
		c.Recognizers = f.path
	}
	if f.include != "" {
		c.Include = catalog.ParsePatterns(f.include)
	}
	if f.exclude != "" {
		c.Exclude = catalog.ParsePatterns(f.exclude)
	}

	cat, err := c.Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading recognizers: %w", err)
	}
	logger.Debug("catalog loaded", zap.Int("recognizers", cat.Len()))
	return cat, nil
}

// newScanner builds a scanner over the selected catalog. A zero budget
// falls back to the configured one.
func (f *recognizerFlags) newScanner(budget time.Duration) (*scanner.Scanner, error) {
	cat, err := f.loadCatalog()
	if err != nil {
		return nil, err
	}

	opts := []scanner.Option{scanner.WithLogger(logger), scanner.WithBudget(cfg.ScanBudget)}
	if budget > 0 {
		opts = append(opts, scanner.WithBudget(budget))
	}
	return scanner.New(cat, opts...)
}

func newSession(sc *scanner.Scanner) *session.Session {
	return session.New(sc,
		session.WithLogger(logger),
		session.WithOptions(cfg.Options),
		session.WithAutoSelectPriority(cfg.AutoSelectPriority),
	)
}

// readText returns the text argument, or stdin when the argument is "-" or
// missing. A single trailing newline from stdin is dropped.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
