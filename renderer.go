package carousel

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DefaultRenderTimeout bounds the wait for a document to reach the
// "complete" ready state.
const DefaultRenderTimeout = 20 * time.Second

// Renderer produces the fully rendered markup of a local HTML file.
// Implementations drive a headless browser so client-side scripts run
// before the markup is captured.
//
// A Renderer owns one browser session. Close must be called exactly once
// the Renderer is no longer needed, on success and failure paths alike.
type Renderer interface {
	// Render loads the file at path, waits until the document reports a
	// complete ready state and returns the rendered markup.
	// Returns ELOAD if the file cannot be loaded or the wait times out.
	Render(ctx context.Context, path string) (html string, err error)

	// Close releases browser resources.
	Close() error
}

// FileURL resolves path to an absolute location and returns a file:// URL
// referencing it. Returns ELOAD if the file does not exist.
func FileURL(path string) (string, error) {
	if path == "" {
		return "", Errorf(ELOAD, "document path required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", Wrapf(err, ELOAD, "resolving %q", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", Wrapf(err, ELOAD, "cannot load document %q", path)
	}
	if info.IsDir() {
		return "", Errorf(ELOAD, "cannot load document %q: is a directory", path)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
