//go:build integration

package chromedp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/carousel"
	"github.com/fwojciec/carousel/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements carousel.Renderer.
var _ carousel.Renderer = (*chromedp.Renderer)(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("returns markup after scripts ran", func(t *testing.T) {
		t.Parallel()

		path := writeHTML(t, `<html><body><div id="c">Loading...</div>
<script>document.getElementById('c').textContent = 'Rendered';</script></body></html>`)

		renderer, err := chromedp.NewRenderer()
		require.NoError(t, err)
		defer renderer.Close()

		html, err := renderer.Render(context.Background(), path)

		require.NoError(t, err)
		assert.Contains(t, html, "Rendered")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("returns ELOAD for a missing file", func(t *testing.T) {
		t.Parallel()

		renderer, err := chromedp.NewRenderer()
		require.NoError(t, err)
		defer renderer.Close()

		_, err = renderer.Render(context.Background(), filepath.Join(t.TempDir(), "nope.html"))

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
	})

	t.Run("returns ELOAD when the page does not finish loading in time", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer srv.Close()

		path := writeHTML(t, `<html><body><img src="`+srv.URL+`/slow.png"></body></html>`)

		renderer, err := chromedp.NewRenderer(chromedp.WithTimeout(200 * time.Millisecond))
		require.NoError(t, err)
		defer renderer.Close()

		_, err = renderer.Render(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns EINVALID after close", func(t *testing.T) {
		t.Parallel()

		renderer, err := chromedp.NewRenderer()
		require.NoError(t, err)
		require.NoError(t, renderer.Close())
		require.NoError(t, renderer.Close())

		_, err = renderer.Render(context.Background(), writeHTML(t, "<html></html>"))

		require.Error(t, err)
		assert.Equal(t, carousel.EINVALID, carousel.ErrorCode(err))
	})
}

func writeHTML(t *testing.T, html string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}
