// Package rod renders local HTML documents with headless Chrome driven by go-rod.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/carousel"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// readyStateJS reports whether the document finished loading, including
// subresources and synchronous scripts.
const readyStateJS = `() => document.readyState === "complete"`

// Ensure Renderer implements carousel.Renderer at compile time.
var _ carousel.Renderer = (*Renderer)(nil)

// Renderer renders local HTML files in a dedicated headless Chrome process.
// Each Renderer owns its browser; Close must be called when it is no longer
// needed.
type Renderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	bin      string
	closed   atomic.Bool
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

// WithBrowserPath uses the Chrome binary at path instead of looking one up
// or downloading it.
func WithBrowserPath(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// NewRenderer launches headless Chrome and connects to it.
//
// The browser runs without a sandbox and with /dev/shm usage disabled so it
// works inside containers. Returns ELOAD if Chrome cannot be launched or
// connected to; a launched process is killed before returning in that case.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{timeout: carousel.DefaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}

	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Leakless(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, carousel.Wrapf(err, carousel.ELOAD, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, carousel.Wrapf(err, carousel.ELOAD, "connecting to browser")
	}

	r.browser = browser
	r.launcher = l
	return r, nil
}

// Render opens path in a new tab, waits for the complete ready state and
// returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, path string) (string, error) {
	if r.closed.Load() {
		return "", carousel.Errorf(carousel.EINVALID, "renderer closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileURL, err := carousel.FileURL(path)
	if err != nil {
		return "", err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", carousel.Wrapf(err, carousel.ELOAD, "opening browser tab")
	}
	defer page.Close()

	// Every operation below shares a single deadline.
	p := page.Context(ctx).Timeout(r.timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(fileURL); err != nil {
		return "", loadError(err, path)
	}
	if err := p.Wait(rod.Eval(readyStateJS)); err != nil {
		return "", loadError(err, path)
	}

	html, err := p.HTML()
	if err != nil {
		return "", loadError(err, path)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if r.browser != nil {
		err = r.browser.Close()
	}
	if r.launcher != nil {
		r.launcher.Kill()
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	if r.launcher == nil {
		return 0
	}
	return r.launcher.PID()
}

func loadError(err error, path string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return carousel.Wrapf(err, carousel.ELOAD, "timed out waiting for %q to load", path)
	}
	return carousel.Wrapf(err, carousel.ELOAD, "loading %q", path)
}
