package mock

import (
	"context"

	"github.com/fwojciec/carousel"
)

var _ carousel.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of carousel.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, path string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, path string) (string, error) {
	return r.RenderFn(ctx, path)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
