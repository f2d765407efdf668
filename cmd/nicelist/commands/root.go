package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nicelist",
		Short: "nicelist - instrumented naughty-or-nice classification service",
		Long: `nicelist answers, for any subject, whether they have been naughty or
nice this year, and emits OpenTelemetry metrics for every request.

Every call records:
  - a request-count increment tagged with the subject's name
  - a request-latency histogram sample in milliseconds

Where those samples end up (console, OTLP collector, Prometheus scrape
endpoint) is selected purely by configuration; the service never
hard-codes a telemetry destination.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
