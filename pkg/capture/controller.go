package capture

import (
	"context"
	"fmt"
	"time"

	"wbharvest/pkg/collector"
	errs "wbharvest/pkg/errors"
	"wbharvest/pkg/logger"
	"wbharvest/pkg/retry"
	"wbharvest/pkg/storage"
	"wbharvest/pkg/ui"
)

// Controller walks the (card, filename) pairs sequentially and drives
// the browser session through navigate, settle, screenshot and persist.
// Any failure aborts the run; screenshots already written stay on disk
// for operator inspection.
type Controller struct {
	session  BrowserSession
	store    *storage.Manager
	settle   time.Duration
	logger   logger.Logger
	progress *ui.CaptureProgress
}

// NewController creates a capture controller. progress may be nil.
func NewController(session BrowserSession, store *storage.Manager, settle time.Duration, log logger.Logger, progress *ui.CaptureProgress) *Controller {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Controller{
		session:  session,
		store:    store,
		settle:   settle,
		logger:   log,
		progress: progress,
	}
}

// CaptureAll captures one screenshot per card under the precomputed
// filenames. Filenames must be one-to-one with cards in the same order
// the sequencer produced them.
func (c *Controller) CaptureAll(ctx context.Context, cards []collector.Card, filenames []string) error {
	if len(cards) != len(filenames) {
		return fmt.Errorf("cards/filenames length mismatch: %d vs %d", len(cards), len(filenames))
	}

	for i, card := range cards {
		if c.progress != nil {
			c.progress.Tick(card.Post.ID)
		}

		c.logger.DebugWithFields("capturing post", map[string]interface{}{
			"post_id":  card.Post.ID,
			"filename": filenames[i],
			"scheme":   card.Scheme,
		})

		if err := c.session.Navigate(card.Scheme); err != nil {
			return errs.Wrap(errs.ErrorTypeNavigation,
				fmt.Sprintf("post %s: navigation to %s failed", card.Post.ID, card.Scheme), err)
		}

		// The post page renders asynchronously after navigation and
		// exposes no render-complete signal; wait a fixed settle time.
		if err := retry.Wait(ctx, c.settle); err != nil {
			return err
		}

		shot, err := c.session.Screenshot()
		if err != nil {
			return errs.Wrap(errs.ErrorTypeCapture,
				fmt.Sprintf("post %s: screenshot failed", card.Post.ID), err)
		}

		if err := c.store.SaveImage(shot, filenames[i]); err != nil {
			return err
		}

		c.logger.DebugWithFields("post captured", map[string]interface{}{
			"post_id":  card.Post.ID,
			"filename": filenames[i],
			"size":     len(shot),
		})
	}

	if c.progress != nil {
		c.progress.Finish()
	}

	return nil
}
