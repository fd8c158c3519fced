// Package fetch - browser.go provides headless browser rendering for course
// pages that build their assignment links with JavaScript.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// DefaultRenderWait is how long the browser waits after body is ready for
// scripts to finish inserting links.
const DefaultRenderWait = 2 * time.Second

// NeedsRendering returns true if the static HTML carries no links at all,
// indicating the course page is likely rendered client-side.
func NeedsRendering(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return true
	}
	return doc.Find("a[href]").Length() == 0
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout, wait time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(wait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	return html, nil
}

// BrowserFetcher fetches over HTTP and re-renders through headless Chrome
// when the static page has no links.
type BrowserFetcher struct {
	client  *Client
	timeout time.Duration
	wait    time.Duration
	render  func(ctx context.Context, url string, timeout, wait time.Duration) (string, error)
}

// NewBrowserFetcher creates a fetcher that falls back to browser rendering.
func NewBrowserFetcher(client *Client, timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserFetcher{
		client:  client,
		timeout: timeout,
		wait:    DefaultRenderWait,
		render:  WithBrowser,
	}
}

// FetchHTML returns the static page, or the rendered page when the static
// one has no links. HTTP failures are returned without trying the browser.
func (b *BrowserFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	html, err := b.client.FetchHTML(ctx, url)
	if err != nil {
		return "", err
	}
	if !NeedsRendering(html) {
		return html, nil
	}

	rendered, err := b.render(ctx, url, b.timeout, b.wait)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return rendered, nil
}

// CheckExists delegates to the HTTP client; a HEAD probe needs no rendering.
func (b *BrowserFetcher) CheckExists(ctx context.Context, url string) bool {
	return b.client.CheckExists(ctx, url)
}
