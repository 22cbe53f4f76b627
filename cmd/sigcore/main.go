package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "sigcore",
		Short: "Exercise the sigcore reactive runtime",
		Long: `sigcore runs the reactive signal graph from the command line.

Use it to replay the reference scenarios or to measure how a
fan-out graph of signals, computeds and effects behaves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log runtime activity to stderr")

	logger := func() *slog.Logger {
		return newLogger(os.Stderr, verbose)
	}

	rootCmd.AddCommand(
		demoCmd(logger),
		benchCmd(logger),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
