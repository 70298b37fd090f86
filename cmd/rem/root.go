package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deanishe/alfred-reminders-demo/internal/log"
)

// Global flags
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rem",
	Short: "Browse Reminders.app lists from Alfred",
	Long: `rem is the backend of an Alfred workflow for Reminders.app.

Alfred runs "rem list" on every keystroke. Results are served from a local
cache and refreshed by a detached background process, so answers stay fast
even though scripting Reminders.app takes seconds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags are parsed by now, so the logger sees --verbose.
		logger := log.New(os.Stderr, verbose)
		cmd.SetContext(logger.WithContext(cmd.Context()))
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output and external commands")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newCacheCmd())
}
