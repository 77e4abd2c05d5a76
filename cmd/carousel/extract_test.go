package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/carousel"
	main "github.com/fwojciec/carousel/cmd/carousel"
	"github.com/fwojciec/carousel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes the result to stdout", func(t *testing.T) {
		t.Parallel()

		var closes atomic.Int32
		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return fixtureRenderer(t, &closes), nil
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page.html"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.JSONEq(t, readTestdata(t, "van-gogh-paintings.json"), stdout.String())
		assert.Contains(t, stdout.String(), "\n    \"artworks\": [")
		assert.Equal(t, int32(1), closes.Load())
	})

	t.Run("writes the result to the output file", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return fixtureRenderer(t, nil), nil
		}
		out := filepath.Join(t.TempDir(), "result.json")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page.html", out}, stdout, stderr)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Wrote 4 items")
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.JSONEq(t, readTestdata(t, "van-gogh-paintings.json"), string(data))
	})

	t.Run("accepts the explicit extract command", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return fixtureRenderer(t, nil), nil
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "page.html"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Sunflowers")
	})

	t.Run("treats a command name after extract as a path", func(t *testing.T) {
		t.Parallel()

		var rendered string
		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			r := fixtureRenderer(t, nil)
			fixture := r.RenderFn
			r.RenderFn = func(ctx context.Context, path string) (string, error) {
				rendered = path
				return fixture(ctx, path)
			}
			return r, nil
		}

		err := m.Run(context.Background(), []string{"extract", "history"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "history", rendered)
	})

	t.Run("writes YAML when requested", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return fixtureRenderer(t, nil), nil
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page.html", "--format", "yaml"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "artworks:\n")
		assert.Contains(t, stdout.String(), "- name: The Starry Night")
		assert.Contains(t, stdout.String(), "image: null")
	})

	t.Run("reports missing carousel and closes the renderer once", func(t *testing.T) {
		t.Parallel()

		var closes atomic.Int32
		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return &mock.Renderer{
				RenderFn: func(ctx context.Context, path string) (string, error) {
					return "<html><body><p>No results</p></body></html>", nil
				},
				CloseFn: func() error {
					closes.Add(1)
					return nil
				},
			}, nil
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page.html"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, carousel.ECAROUSEL, carousel.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
		assert.Equal(t, int32(1), closes.Load())
	})

	t.Run("closes the renderer when rendering fails", func(t *testing.T) {
		t.Parallel()

		var closes atomic.Int32
		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			return failingRenderer(carousel.Errorf(carousel.ELOAD, "timed out"), &closes), nil
		}

		err := m.Run(context.Background(), []string{"page.html"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
		assert.Equal(t, int32(1), closes.Load())
	})

	t.Run("ignores close errors after a successful extraction", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.NewRenderer = func(main.RendererConfig) (carousel.Renderer, error) {
			r := fixtureRenderer(t, nil)
			r.CloseFn = func() error { return errBoom }
			return r, nil
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"page.html"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "artworks")
	})
}
