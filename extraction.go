package carousel

import (
	"context"
	"time"
)

// Extraction is a recorded extraction run.
type Extraction struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	ContentHash string    `json:"contentHash"`
	Result      *Result   `json:"result"`
	ExtractedAt time.Time `json:"extractedAt"`

	// Markup is the rendered HTML the result was extracted from.
	// It is hashed on create and not persisted.
	Markup string `json:"-"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.SourcePath == "" {
		return Errorf(EINVALID, "extraction source path required")
	}
	if e.Result == nil {
		return Errorf(EINVALID, "extraction result required")
	}
	return e.Result.Validate()
}

// ExtractionService represents a service for recording extraction runs.
type ExtractionService interface {
	// CreateExtraction records a new extraction run.
	CreateExtraction(ctx context.Context, ext *Extraction) error

	// FindExtractionByID retrieves an extraction by ID, items included.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter, newest first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction removes an extraction and its items.
	// Returns ENOTFOUND if the extraction does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	ID         *string `json:"id"`
	SourcePath *string `json:"sourcePath"`
	ListName   *string `json:"listName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
