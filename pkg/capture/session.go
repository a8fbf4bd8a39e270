package capture

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"wbharvest/pkg/config"
)

// BrowserSession is the browser-automation boundary the controller
// drives: one active tab, synchronous navigation and capture.
type BrowserSession interface {
	Navigate(url string) error
	Screenshot() ([]byte, error)
	Close()
}

// ChromeSession owns a single headless Chrome process for the duration
// of a run. Acquired once at run start, released via Close.
type ChromeSession struct {
	ctx           context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	navTimeout    time.Duration
}

// NewChromeSession launches the browser and prepares its only tab.
// Cache is disabled so every post page renders fresh.
func NewChromeSession(ctx context.Context, cfg *config.CaptureConfig) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if cfg.Headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetCacheDisabled(true),
	); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	return &ChromeSession{
		ctx:           browserCtx,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
		navTimeout:    cfg.NavigationTimeout,
	}, nil
}

// Navigate loads the given URL in the session's tab
func (s *ChromeSession) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	return chromedp.Run(ctx, chromedp.Navigate(url))
}

// Screenshot captures the full rendered page as a lossless PNG
func (s *ChromeSession) Screenshot() ([]byte, error) {
	var buf []byte
	// quality 100 selects PNG in chromedp's FullScreenshot
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close releases the browser process and its allocator
func (s *ChromeSession) Close() {
	s.browserCancel()
	s.allocCancel()
}
