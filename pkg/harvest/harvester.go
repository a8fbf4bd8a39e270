// Package harvest orchestrates a full collection run: paginated fetch,
// filename sequencing, browser capture and report assembly.
package harvest

import (
	"context"
	"time"

	"wbharvest/pkg/capture"
	"wbharvest/pkg/collector"
	"wbharvest/pkg/config"
	"wbharvest/pkg/logger"
	"wbharvest/pkg/report"
	"wbharvest/pkg/retry"
	"wbharvest/pkg/sequence"
	"wbharvest/pkg/storage"
	"wbharvest/pkg/ui"
	"wbharvest/pkg/weibo"
)

// Harvester runs the collection pipeline end to end
type Harvester struct {
	cfg    *config.Config
	client collector.FeedClient
	logger logger.Logger

	// now is injectable for tests; defaults to time.Now
	now func() time.Time
}

// New creates a harvester from a validated configuration
func New(cfg *config.Config) *Harvester {
	log := logger.GetLogger()
	client := weibo.NewClient(
		cfg.Weibo.BaseURL,
		cfg.Weibo.ContainerID,
		cfg.Weibo.UserAgent,
		cfg.Weibo.RequestTimeout,
		log,
	)

	return &Harvester{
		cfg:    cfg,
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// Run executes one collection run. All errors are fatal; files already
// written stay on disk for operator inspection.
func (h *Harvester) Run(ctx context.Context) error {
	loc := h.cfg.Location()
	now := h.now().In(loc)

	runDir := h.cfg.Output.RunDirectory(now)
	store, err := storage.NewManager(runDir)
	if err != nil {
		return err
	}

	window := collector.NewWindow(now, h.cfg.Window.RecentDays, h.cfg.Window.AccentDays, loc)

	retryCfg := &retry.Config{
		MaxAttempts: h.cfg.Retry.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    h.cfg.Retry.BaseDelay,
			MaxDelay:     h.cfg.Retry.MaxDelay,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Logger:  h.logger,
	}

	coll := collector.New(h.client, window, h.cfg.Collection.Limit, h.cfg.Collection.PageDelay, retryCfg, h.logger)
	cards, err := coll.Collect(ctx)
	if err != nil {
		return err
	}

	h.logger.InfoWithFields("posts collected", map[string]interface{}{
		"count":   len(cards),
		"run_dir": runDir,
	})

	// Filenames are fixed before capture starts; the capture loop and
	// the report must see the identical order the sequencer saw.
	filenames := sequence.Filenames(cards, loc)

	if h.cfg.Capture.Enabled {
		if err := h.captureAll(ctx, cards, filenames, store); err != nil {
			return err
		}
	}

	reportPath := h.cfg.Output.ReportPath(now)
	if err := report.Write(cards, filenames, loc, reportPath); err != nil {
		return err
	}

	h.logger.InfoWithFields("harvest complete", map[string]interface{}{
		"posts":  len(cards),
		"report": reportPath,
	})

	return nil
}

// captureAll owns the browser session for the capture phase
func (h *Harvester) captureAll(ctx context.Context, cards []collector.Card, filenames []string, store *storage.Manager) error {
	session, err := capture.NewChromeSession(ctx, &h.cfg.Capture)
	if err != nil {
		return err
	}
	defer session.Close()

	progress := ui.NewCaptureProgress(len(cards))
	ctrl := capture.NewController(session, store, h.cfg.Capture.SettleDelay, h.logger, progress)
	return ctrl.CaptureAll(ctx, cards, filenames)
}
