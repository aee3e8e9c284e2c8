package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "kaisou",
	Short: "Build and print entity hierarchies",
	Long: `kaisou builds parent/child hierarchies over an in-memory entity world
and prints them. It is a playground for the kaisou library: the demo command
walks through attach, detach and despawn, the tree command generates a
synthetic tree and prints it in a chosen traversal order.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log hierarchy operations to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger returns the logger handed to hierarchies. Without --verbose only
// warnings (dangling links) are shown.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
