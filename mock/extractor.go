package mock

import "github.com/fwojciec/carousel"

var _ carousel.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of carousel.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*carousel.Result, error)
}

func (e *Extractor) Extract(html string) (*carousel.Result, error) {
	return e.ExtractFn(html)
}
