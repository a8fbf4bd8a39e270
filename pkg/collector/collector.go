package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"wbharvest/pkg/logger"
	"wbharvest/pkg/retry"
	"wbharvest/pkg/weibo"
)

// ErrFeedExhausted is returned when the feed yields an empty page
// before the cutoff boundary or the collection limit is reached.
// Pagination cannot proceed without the current page.
var ErrFeedExhausted = errors.New("feed returned an empty page")

// FeedClient fetches one page of raw feed cards
type FeedClient interface {
	FetchPage(ctx context.Context, page int) ([]weibo.Card, error)
}

// Collector drives the feed page by page and accumulates includable
// cards in feed order until a termination signal fires.
type Collector struct {
	client   FeedClient
	window   Window
	limit    int
	limiter  *rate.Limiter
	retryCfg *retry.Config
	logger   logger.Logger
}

// New creates a new Collector. pageDelay is the courtesy delay observed
// between page fetches; retryCfg may be nil for fail-fast fetches.
func New(client FeedClient, window Window, limit int, pageDelay time.Duration, retryCfg *retry.Config, log logger.Logger) *Collector {
	if log == nil {
		log = logger.GetLogger()
	}
	if retryCfg == nil {
		retryCfg = retry.DefaultConfig()
	}

	every := rate.Inf
	if pageDelay > 0 {
		every = rate.Every(pageDelay)
	}

	return &Collector{
		client:   client,
		window:   window,
		limit:    limit,
		limiter:  rate.NewLimiter(every, 1),
		retryCfg: retryCfg,
		logger:   log,
	}
}

// Collect walks the feed from page 1 and returns the accumulated cards,
// newest first. Termination is checked after each classified post, so a
// cutoff found mid-page stops without touching the rest of that page.
// Any fetch or normalization failure aborts the run.
func (c *Collector) Collect(ctx context.Context) ([]Card, error) {
	c.logger.InfoWithFields("collecting posts", map[string]interface{}{
		"recent_boundary": c.window.Recent,
		"cutoff_boundary": c.window.Cutoff,
		"limit":           c.limit,
	})

	cards := make([]Card, 0, c.limit)

	for page := 1; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		raw, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("page %d: %w", page, ErrFeedExhausted)
		}

		for _, rawCard := range raw {
			card, err := Normalize(rawCard)
			if err != nil {
				return nil, err
			}

			verdict := c.window.Classify(card.Post)
			if verdict.Include {
				cards = append(cards, card)
			}

			if verdict.CutoffReached || len(cards) >= c.limit {
				c.logger.InfoWithFields("collection finished", map[string]interface{}{
					"pages":          page,
					"cards":          len(cards),
					"cutoff_reached": verdict.CutoffReached,
				})
				return cards, nil
			}
		}

		c.logger.DebugWithFields("page processed", map[string]interface{}{
			"page":        page,
			"accumulated": len(cards),
		})
	}
}

// fetchPage fetches one page under the injected retry policy
func (c *Collector) fetchPage(ctx context.Context, page int) ([]weibo.Card, error) {
	cfg := *c.retryCfg
	cfg.Context = ctx
	return retry.DoWithResult(func() ([]weibo.Card, error) {
		return c.client.FetchPage(ctx, page)
	}, &cfg)
}
