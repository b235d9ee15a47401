// Package render fetches pages through a headless browser so that
// forms built client-side (SPA pages) are present in the HTML handed
// to classification.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Render navigates to url in a headless browser and returns the DOM
// serialized after scripts have run.
func Render(ctx context.Context, url string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}
