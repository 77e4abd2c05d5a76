package carousel_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/carousel"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := carousel.Errorf(carousel.ENOTFOUND, "extraction %q not found", "test")

	assert.Equal(t, carousel.ENOTFOUND, carousel.ErrorCode(err))
	assert.Equal(t, "extraction \"test\" not found", carousel.ErrorMessage(err))
	assert.Equal(t, "extraction \"test\" not found", err.Error())
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	err := carousel.Wrapf(context.DeadlineExceeded, carousel.ELOAD, "timed out waiting for %q to load", "a.html")

	assert.Equal(t, carousel.ELOAD, carousel.ErrorCode(err))
	assert.Equal(t, `timed out waiting for "a.html" to load`, carousel.ErrorMessage(err))
	assert.Equal(t, `timed out waiting for "a.html" to load: context deadline exceeded`, err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extracting: %w", carousel.Errorf(carousel.ECAROUSEL, "no carousel"))

	assert.Equal(t, carousel.ECAROUSEL, carousel.ErrorCode(err))
	assert.Equal(t, "no carousel", carousel.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, carousel.EINTERNAL, carousel.ErrorCode(err))
	assert.Equal(t, "Internal error.", carousel.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, carousel.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, carousel.ErrorMessage(nil))
}
