// Package cli implements the wordbubble command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

var (
	flags rootFlags

	// logger is built in PersistentPreRunE; level is adjusted once config.yaml
	// has been read.
	logger   = zap.NewNop()
	logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

// NewRootCmd creates the top-level "wordbubble" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	logLevel.SetLevel(zapcore.WarnLevel)

	root := &cobra.Command{
		Use:   "wordbubble",
		Short: "Build a word-sequence graph from the phrases you type",
		Long: "WordBubbles records which words follow which across every phrase you\n" +
			"submit and shows each word as a bubble annotated with how many\n" +
			"successors it had before.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $WORDBUBBLE_CONFIG_DIR or platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $WORDBUBBLE_DATA_DIR or platform data dir)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newWordCmd())
	root.AddCommand(newServeCmd())

	return root
}

// initLogger builds the process logger on stderr.
func initLogger() error {
	if flags.verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
	}
	config := zap.NewProductionConfig()
	config.Level = logLevel
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = !flags.verbose

	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// codedError carries the process exit code for a failed command.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// exitError tags err with an exit code.
func exitError(code int, format string, args ...any) error {
	return &codedError{code: code, err: fmt.Errorf(format, args...)}
}

// exitCode returns the code attached by exitError, or exitUserError.
func exitCode(err error) int {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
