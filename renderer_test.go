package carousel_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/carousel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURL(t *testing.T) {
	t.Parallel()

	t.Run("returns a file URL for an absolute path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

		got, err := carousel.FileURL(path)

		require.NoError(t, err)
		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "file", u.Scheme)
		assert.Equal(t, filepath.ToSlash(path), u.Path)
	})

	t.Run("escapes spaces in the path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "van gogh.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

		got, err := carousel.FileURL(path)

		require.NoError(t, err)
		assert.Contains(t, got, "van%20gogh.html")
	})

	t.Run("returns ELOAD for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := carousel.FileURL(filepath.Join(t.TempDir(), "missing.html"))

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
	})

	t.Run("returns ELOAD for a directory", func(t *testing.T) {
		t.Parallel()

		_, err := carousel.FileURL(t.TempDir())

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
	})

	t.Run("returns ELOAD for an empty path", func(t *testing.T) {
		t.Parallel()

		_, err := carousel.FileURL("")

		require.Error(t, err)
		assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
	})
}
