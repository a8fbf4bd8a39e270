package main

import (
	"context"

	"github.com/spf13/cobra"

	"wbharvest/pkg/config"
	"wbharvest/pkg/harvest"
	"wbharvest/pkg/logger"
	"wbharvest/pkg/ui"
)

var (
	// Run command flags
	outputDir  string
	recentDays int
	accentDays int
	limit      int
	captures   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one collection run",
	Long: `Execute one collection run: fetch the feed, capture screenshots and
write the spreadsheet report.

Output lands in a dated directory named after the collection date
unless --output overrides it.`,
	Example: `  # Run with defaults (3 recent days skipped, 7 day window)
  wbharvest run

  # Widen the window and skip screenshot capture
  wbharvest run --recent-days 1 --accent-days 14 --captures=false

  # Collect at most 10 posts into a fixed directory
  wbharvest run --limit 10 --output ./out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHarvest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addHarvestFlags(runCmd)
}

func addHarvestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for the run (default: dated directory)")
	cmd.Flags().IntVar(&recentDays, "recent-days", 3, "posts newer than this many days are skipped")
	cmd.Flags().IntVar(&accentDays, "accent-days", 7, "collection window length in days past the recent boundary")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of posts to collect")
	cmd.Flags().BoolVar(&captures, "captures", true, "capture a screenshot of each post")
}

func runHarvest(cmd *cobra.Command) error {
	// Build flags map; only explicitly set flags override the config
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if cmd.Flags().Changed("recent-days") {
		flags["recent-days"] = recentDays
	}
	if cmd.Flags().Changed("accent-days") {
		flags["accent-days"] = accentDays
	}
	if cmd.Flags().Changed("limit") {
		flags["limit"] = limit
	}
	if cmd.Flags().Changed("captures") {
		flags["captures"] = captures
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration: %v", err)
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger: %v", err)
		return err
	}

	logger.WithField("container_id", cfg.Weibo.ContainerID).Info("starting harvest")

	h := harvest.New(cfg)
	if err := h.Run(context.Background()); err != nil {
		logger.WithError(err).Error("harvest failed")
		ui.PrintError("Harvest failed: %v", err)
		return err
	}

	ui.PrintSuccess("Harvest completed")
	return nil
}
