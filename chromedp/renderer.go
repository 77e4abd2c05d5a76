// Package chromedp renders local HTML documents with headless Chrome driven
// by the Chrome DevTools Protocol through chromedp.
package chromedp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/fwojciec/carousel"
)

const readyStateJS = `document.readyState === "complete"`

// Ensure Renderer implements carousel.Renderer at compile time.
var _ carousel.Renderer = (*Renderer)(nil)

// Renderer renders local HTML files in a dedicated headless Chrome process.
// Close must be called when the Renderer is no longer needed.
type Renderer struct {
	timeout time.Duration
	bin     string

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout bounds navigation and the wait for the complete ready state.
// Defaults to carousel.DefaultRenderTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithBrowserPath uses the Chrome binary at path.
func WithBrowserPath(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// NewRenderer starts headless Chrome eagerly so launch failures surface here.
// Returns ELOAD if the browser cannot be started.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{timeout: carousel.DefaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.bin))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, carousel.Wrapf(err, carousel.ELOAD, "starting browser")
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	return r, nil
}

// Render opens path in a new tab, waits for the complete ready state and
// returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, path string) (string, error) {
	if err := r.checkClosed(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileURL, err := carousel.FileURL(path)
	if err != nil {
		return "", err
	}

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()

	tabCtx, cancel := context.WithTimeout(tabCtx, r.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		ready bool
		html  string
	)
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(fileURL),
		chromedp.Poll(readyStateJS, &ready),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", carousel.Wrapf(ctxErr, carousel.ELOAD, "loading %q", path)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(tabCtx.Err(), context.DeadlineExceeded) {
			return "", carousel.Wrapf(context.DeadlineExceeded, carousel.ELOAD, "timed out waiting for %q to load", path)
		}
		return "", carousel.Wrapf(err, carousel.ELOAD, "loading %q", path)
	}
	return html, nil
}

// Close releases all browser resources. Close is idempotent.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.browserCancel()
	r.allocCancel()
	return nil
}

func (r *Renderer) checkClosed() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return carousel.Errorf(carousel.EINVALID, "renderer closed")
	}
	return nil
}
