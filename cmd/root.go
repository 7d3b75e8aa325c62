package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "qc",
	Short: "Offline-first bookmark CLI for QuiClick",
	Long: `qc - A command-line companion for the QuiClick bookmark server.

Every change lands in the local store immediately and syncs to the server
in the background, so the CLI stays usable without a connection.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir, initLogging)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Bookmark Commands:"},
		&cobra.Group{ID: "sync", Title: "Sync Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// initLogging routes slog to stderr; QC_DEBUG=1 enables debug output.
func initLogging() {
	level := slog.LevelWarn
	if v := os.Getenv("QC_DEBUG"); v == "1" || v == "true" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// getBaseDir returns the base directory for the local store
func getBaseDir() string {
	return baseDir
}
