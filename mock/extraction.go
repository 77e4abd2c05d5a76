package mock

import (
	"context"

	"github.com/fwojciec/carousel"
)

var _ carousel.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of carousel.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn   func(ctx context.Context, ext *carousel.Extraction) error
	FindExtractionByIDFn func(ctx context.Context, id string) (*carousel.Extraction, error)
	FindExtractionsFn    func(ctx context.Context, filter carousel.ExtractionFilter) ([]*carousel.Extraction, error)
	DeleteExtractionFn   func(ctx context.Context, id string) error
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, ext *carousel.Extraction) error {
	return s.CreateExtractionFn(ctx, ext)
}

func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*carousel.Extraction, error) {
	return s.FindExtractionByIDFn(ctx, id)
}

func (s *ExtractionService) FindExtractions(ctx context.Context, filter carousel.ExtractionFilter) ([]*carousel.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}

func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	return s.DeleteExtractionFn(ctx, id)
}
