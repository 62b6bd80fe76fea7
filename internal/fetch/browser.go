package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/brogergvhs/yomikazu/internal/site"
)

// Renderer loads pages in headless Chrome, for sites that build the chapter
// body with scripts. A fresh browser is started per Fetch.
type Renderer struct {
	timeout time.Duration
	ua      string
	log     DebugLogger
}

func NewRenderer(timeout time.Duration, userAgent string, log DebugLogger) *Renderer {
	return &Renderer{timeout: timeout, ua: PickUserAgent(userAgent), log: log}
}

func (r *Renderer) Fetch(ctx context.Context, rawURL string) (*site.Page, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(r.ua),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
		defer cancel()
	}

	if r.log != nil {
		r.log.Debugf("chrome: navigating to %s\n", rawURL)
	}

	var html, location string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", rawURL, err)
	}

	if location == "" {
		location = rawURL
	}

	return site.NewPage(location, strings.NewReader(html))
}
