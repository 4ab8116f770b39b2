package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"

	"gamecal/internal/logger"
)

// eventSelector matches anything that suggests the schedule has rendered:
// ticket links or any element whose class mentions events.
const eventSelector = `a[href*="/event/"], [class*="event"], [class*="Event"]`

const (
	navigateTimeout = 60 * time.Second
	selectorTimeout = 15 * time.Second
	settleDelay     = 3 * time.Second
	scrollCount     = 3
	scrollDelay     = 1 * time.Second
)

// Options controls how the fetcher drives the browser.
type Options struct {
	// Headless runs Chrome without a visible window. Turning it off helps
	// when debugging pages that behave differently under automation.
	Headless bool

	// DebugFile, when non-empty, receives the captured HTML for offline
	// inspection.
	DebugFile string
}

// DefaultOptions returns the options used for unattended runs.
func DefaultOptions() Options {
	return Options{Headless: true}
}

// Fetcher drives a headless browser to render a page.
type Fetcher struct {
	opts Options
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts Options) *Fetcher {
	return &Fetcher{opts: opts}
}

// Fetch navigates to the URL, waits for the schedule to render, scrolls to
// flush lazy-loaded content, and returns the resulting HTML. Navigation
// failures and timeouts are fatal; a missing event selector is not, since
// the extraction cascade has text-level fallbacks.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", f.opts.Headless),
			chromedp.Flag("disable-gpu", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// The timeout bounds the initial load alone; the selector wait, settle
	// delay, and scroll passes run on their own budgets.
	var html string
	err := chromedp.Run(browserCtx,
		withTimeout(navigateTimeout, chromedp.Navigate(url)),
		chromedp.ActionFunc(waitForEvents),
		chromedp.Sleep(settleDelay),
		chromedp.ActionFunc(scrollThrough),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	logger.Debug("page fetched", logger.Fields{
		"url":   url,
		"bytes": len(html),
	})

	if f.opts.DebugFile != "" {
		if err := os.WriteFile(f.opts.DebugFile, []byte(html), 0o644); err != nil {
			logger.Warn("failed to write debug HTML", logger.Fields{
				"path": f.opts.DebugFile,
			})
		}
	}

	return html, nil
}

// withTimeout bounds a single action without constraining the rest of the
// run.
func withTimeout(d time.Duration, action chromedp.Action) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return action.Do(ctx)
	}
}

// waitForEvents waits briefly for event elements to appear. Pages that never
// show them still get scraped; the wait only saves the settle delay from
// running against a blank shell.
func waitForEvents(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, selectorTimeout)
	defer cancel()

	err := chromedp.WaitVisible(eventSelector, chromedp.ByQuery).Do(waitCtx)
	if err != nil {
		logger.Debug("no event selectors found, continuing anyway", nil)
	}
	return nil
}

// scrollThrough scrolls to the bottom a few times to trigger lazy loading.
func scrollThrough(ctx context.Context) error {
	for i := 0; i < scrollCount; i++ {
		if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx); err != nil {
			return err
		}
		if err := chromedp.Sleep(scrollDelay).Do(ctx); err != nil {
			return err
		}
	}
	return nil
}
