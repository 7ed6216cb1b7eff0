package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeFetcher renders a page in headless Chrome and returns the resulting
// DOM. Museum calendars (MoMA, Guggenheim, AMNH) populate their listings
// from JavaScript, so a plain HTTP fetch sees an empty shell.
type ChromeFetcher struct {
	timeout time.Duration
	settle  time.Duration
}

// NewChrome creates a ChromeFetcher with the given navigation timeout.
// Each Get waits a short settle period after load for dynamic content.
func NewChrome(timeout time.Duration) *ChromeFetcher {
	return &ChromeFetcher{
		timeout: timeout,
		settle:  3 * time.Second,
	}
}

// Get navigates headless Chrome to url and returns the rendered HTML.
func (f *ChromeFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return []byte(html), nil
}
