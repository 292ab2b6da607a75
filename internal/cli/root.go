// Package cli implements the command-line interface for gocube-solver.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath    string
	verbose   bool
	logFormat string

	// logger is configured from the global flags before any command runs.
	logger = slog.New(slog.DiscardHandler)
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube-solver",
	Short: "Rubik's Cube search solver",
	Long: `gocube-solver - A CLI tool for finding move sequences between Rubik's Cube states.

Describe a cube in a YAML file or as a scramble of the solved cube, search for
a solution with a depth-limited search, and browse or replay past runs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logFormat != "text" && logFormat != "json" {
			return fmt.Errorf("unknown log format %q (want text or json)", logFormat)
		}
		logger = newLogger(verbose, logFormat, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.gocube_solver/runs.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

// newLogger creates the command logger. Verbose enables debug messages.
func newLogger(verbose bool, format string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
