package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wbharvest",
	Short: "Collect Weibo posts into a dated screenshot-and-spreadsheet report",
	Long: `wbharvest walks a Weibo container feed page by page, collects the
posts that fall inside the configured time window, captures a full-page
screenshot of each post and assembles a spreadsheet correlating every
post with its screenshot file.

The time window is defined relative to the collection date: posts newer
than the recent boundary are still accumulating engagement and are
skipped; the first post older than the cutoff boundary terminates the
collection.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHarvest(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .wbharvest.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// The root command doubles as the run command
	addHarvestFlags(rootCmd)
}
